package catalogsync

import (
	"context"
	"errors"
	"fmt"

	"fitclub-backend/internal/domain/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateVideoAsset registers a new empty asset at the video host and returns
// its id. This is the explicit first step of the upload flow: the client
// then streams the bytes through the upload proxy and finally calls
// CreateVideo with the id.
func (s *Service) CreateVideoAsset(ctx context.Context, actor Actor, title string) (string, error) {
	if !actor.IsAdmin() {
		return "", ErrUnauthorized
	}
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	assetID, err := s.videos.CreateAsset(ctx, title)
	if err = s.sideEffect(Fatal, "bunny", "create asset", err); err != nil {
		return "", err
	}
	return assetID, nil
}

type CreateVideoInput struct {
	Title        string
	BunnyVideoID string
	PackageID    uint
	Stage        *string
	Type         *string
	DurationMin  *int
}

// CreateVideo writes the catalog row for an already-created asset. The
// ordering index is assigned inside the store transaction (max+1, retried on
// conflict); no external system is called here.
func (s *Service) CreateVideo(ctx context.Context, actor Actor, in CreateVideoInput) (*catalog.Video, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if in.Title == "" || in.BunnyVideoID == "" || in.PackageID == 0 {
		return nil, fmt.Errorf("%w: title, video id and package id are required", ErrInvalidInput)
	}

	v := &catalog.Video{
		Title:        in.Title,
		BunnyVideoID: in.BunnyVideoID,
		PackageID:    in.PackageID,
		Stage:        in.Stage,
		Type:         in.Type,
		DurationMin:  in.DurationMin,
	}
	if err := s.store.CreateVideoNextIndex(ctx, v); err != nil {
		return nil, fmt.Errorf("persist video: %w", err)
	}
	return v, nil
}

type UpdateVideoInput struct {
	Title       string
	PackageID   uint
	OrderIndex  int
	Stage       *string
	Type        *string
	DurationMin *int
}

// UpdateVideo is a pure catalog update; the external asset is not touched.
func (s *Service) UpdateVideo(ctx context.Context, actor Actor, id uint, in UpdateVideoInput) (*catalog.Video, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if in.Title == "" || in.PackageID == 0 || in.OrderIndex < 1 {
		return nil, fmt.Errorf("%w: title, package id and a positive order index are required", ErrInvalidInput)
	}

	v, err := s.store.GetVideo(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load video: %w", err)
	}

	v.Title = in.Title
	v.PackageID = in.PackageID
	v.OrderIndex = in.OrderIndex
	v.Stage = in.Stage
	v.Type = in.Type
	v.DurationMin = in.DurationMin

	if err := s.store.SaveVideo(ctx, v); err != nil {
		return nil, fmt.Errorf("persist video: %w", err)
	}
	return v, nil
}

// DeleteVideo removes the external asset best-effort, then the catalog row.
// A failed asset delete never blocks row removal: a catalog row pointing at
// a dead asset is worse than an orphaned asset on the host.
func (s *Service) DeleteVideo(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}

	v, err := s.store.GetVideo(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load video: %w", err)
	}

	if v.BunnyVideoID != "" {
		err := s.videos.DeleteAsset(ctx, v.BunnyVideoID)
		_ = s.sideEffect(BestEffort, "bunny", "delete asset", err,
			zap.Uint("video_id", v.ID), zap.String("bunny_video_id", v.BunnyVideoID))
	}

	if err := s.store.DeleteVideo(ctx, v.ID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}
