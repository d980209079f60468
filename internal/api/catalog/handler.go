package catalog

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"fitclub-backend/internal/catalogsync"
	"fitclub-backend/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *catalogsync.Service
	store *store.Store
}

func NewHandler(svc *catalogsync.Service, st *store.Store) *Handler {
	return &Handler{svc: svc, store: st}
}

func actorFrom(c *gin.Context) catalogsync.Actor {
	return catalogsync.Actor{
		UserID: c.GetUint("user_id"),
		Role:   c.GetString("role"),
	}
}

// respondError maps the engine's error taxonomy onto HTTP statuses. The raw
// message is surfaced; the admin UI shows it as-is.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogsync.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, catalogsync.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalogsync.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var upstream *catalogsync.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func imageFromForm(c *gin.Context) (*catalogsync.ImageUpload, multipart.File, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file field at all is fine; the image is optional.
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &catalogsync.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        f,
	}, f, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// POST /admin/packages (multipart form)
func (h *Handler) CreatePackage(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	courseID, err := strconv.ParseUint(c.PostForm("course_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course_id"})
		return
	}

	image, file, err := imageFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	pkg, err := h.svc.CreatePackage(c.Request.Context(), actorFrom(c), catalogsync.CreatePackageInput{
		Name:        c.PostForm("name"),
		Title:       optionalString(c.PostForm("title")),
		Description: c.PostForm("description"),
		Price:       price,
		CourseID:    uint(courseID),
		Badge:       c.PostForm("badge"),
		PaymentMode: c.PostForm("payment_mode"),
		Image:       image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

// PUT /admin/packages/:id (multipart form)
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package id"})
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}

	image, file, err := imageFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	pkg, err := h.svc.UpdatePackage(c.Request.Context(), actorFrom(c), uint(id), catalogsync.UpdatePackageInput{
		Name:        c.PostForm("name"),
		Title:       optionalString(c.PostForm("title")),
		Description: c.PostForm("description"),
		Price:       price,
		Badge:       c.PostForm("badge"),
		RemoveImage: c.PostForm("remove_image") == "true",
		Image:       image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

type videoInput struct {
	Title        string  `json:"title"`
	BunnyVideoID string  `json:"bunny_video_id"`
	PackageID    uint    `json:"package_id"`
	OrderIndex   int     `json:"order_index"`
	Stage        *string `json:"stage"`
	Type         *string `json:"type"`
	DurationMin  *int    `json:"duration_min"`
}

// POST /admin/videos
func (h *Handler) CreateVideo(c *gin.Context) {
	var in videoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.svc.CreateVideo(c.Request.Context(), actorFrom(c), catalogsync.CreateVideoInput{
		Title:        in.Title,
		BunnyVideoID: in.BunnyVideoID,
		PackageID:    in.PackageID,
		Stage:        in.Stage,
		Type:         in.Type,
		DurationMin:  in.DurationMin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PUT /admin/videos/:id
func (h *Handler) UpdateVideo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}
	var in videoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.svc.UpdateVideo(c.Request.Context(), actorFrom(c), uint(id), catalogsync.UpdateVideoInput{
		Title:       in.Title,
		PackageID:   in.PackageID,
		OrderIndex:  in.OrderIndex,
		Stage:       in.Stage,
		Type:        in.Type,
		DurationMin: in.DurationMin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/videos/:id
func (h *Handler) DeleteVideo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video id"})
		return
	}
	if err := h.svc.DeleteVideo(c.Request.Context(), actorFrom(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /admin/videos/assets, explicit asset creation before upload.
func (h *Handler) CreateVideoAsset(c *gin.Context) {
	var in struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assetID, err := h.svc.CreateVideoAsset(c.Request.Context(), actorFrom(c), in.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"video_id": assetID})
}
