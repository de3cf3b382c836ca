package hotel

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fala-hotels/fala-api/internal/pkg/dateutil"
	"github.com/fala-hotels/fala-api/internal/pkg/errorhandler"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
	"github.com/fala-hotels/fala-api/internal/pkg/storage"
)

const presignTTL = 15 * time.Minute

// WakeupChannel notifies the image worker that a new original was confirmed.
const WakeupChannel = "hotel_images:confirmed"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Handler handles hotel HTTP requests
type Handler struct {
	repo    *Repository
	storage storage.ImageStorage
	redis   *redis.Client
}

// NewHandler creates a new hotel handler. storage and redis may be nil when
// image management is disabled.
func NewHandler(repo *Repository, st storage.ImageStorage, rdb *redis.Client) *Handler {
	return &Handler{repo: repo, storage: st, redis: rdb}
}

// List handles GET /api/v1/hotels
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePaging(r)

	hotels, total, err := h.repo.List(r.Context(), page, limit)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "hotels.list", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	response.Hotels(w, ToResponses(hotels), response.Pagination{
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		Limit:      limit,
	})
}

// Search handles GET /api/v1/hotels/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := parsePaging(r)

	filter := SearchFilter{
		Destination: strings.TrimSpace(q.Get("destination")),
	}
	if guests, err := strconv.Atoi(q.Get("guests")); err == nil && guests > 0 {
		filter.Guests = guests
	}
	if p, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil && p > 0 {
		filter.MinPrice = p
	}
	if p, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil && p > 0 {
		filter.MaxPrice = p
	}

	checkIn := dateutil.NormalizeDate(q.Get("checkIn"))
	checkOut := dateutil.NormalizeDate(q.Get("checkOut"))
	if checkIn != "" && checkOut != "" {
		if dateutil.DiffInNights(checkIn, checkOut) <= 0 {
			response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
			return
		}
		filter.CheckIn = dateutil.ToDateOnlyString(checkIn)
		filter.CheckOut = dateutil.ToDateOnlyString(checkOut)
	}

	hotels, total, err := h.repo.Search(r.Context(), filter, page, limit)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "hotels.search", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	response.Hotels(w, ToResponses(hotels), response.Pagination{
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		Limit:      limit,
	})
}

// Get handles GET /api/v1/hotels/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	hotel, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.LogDatabaseError(r.Context(), "hotels.get", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}
	if hotel == nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	response.OK(w, ToResponse(hotel))
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// PresignImage handles POST /api/v1/hotels/{id}/images/presign
// Returns a URL the management UI uploads the original to directly.
func (h *Handler) PresignImage(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		response.Error(w, http.StatusServiceUnavailable, "Image storage is not configured.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	hotel, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}
	if hotel == nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	var req presignRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	ext, ok := allowedImageTypes[req.ContentType]
	if !ok {
		response.ValidationError(w, []response.FieldError{{
			Field:   "contentType",
			Message: "Only JPEG, PNG and WebP images are accepted",
			Code:    "UNSUPPORTED_TYPE",
		}})
		return
	}
	if e := strings.ToLower(path.Ext(req.FileName)); e == ".jpeg" {
		ext = ".jpg"
	} else if e != "" && (e == ".jpg" || e == ".png" || e == ".webp") {
		ext = e
	}

	key := fmt.Sprintf("hotels/%s/originals/%s%s", id, uuid.New(), ext)
	uploadURL, err := h.storage.PresignUpload(r.Context(), key, req.ContentType, presignTTL)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	response.OK(w, map[string]interface{}{
		"uploadUrl": uploadURL,
		"key":       key,
		"publicUrl": h.storage.GetURL(key),
		"expiresIn": int(presignTTL.Seconds()),
	})
}

type confirmImageRequest struct {
	Key string `json:"key"`
}

// ConfirmImage handles POST /api/v1/hotels/{id}/images/confirm
// Verifies the upload landed, registers it for thumbnail processing and
// attaches the public URL to the hotel.
func (h *Handler) ConfirmImage(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		response.Error(w, http.StatusServiceUnavailable, "Image storage is not configured.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, errorhandler.UserMessage(http.StatusNotFound))
		return
	}

	var req confirmImageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil || req.Key == "" {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}
	if !strings.HasPrefix(req.Key, fmt.Sprintf("hotels/%s/originals/", id)) {
		response.BadRequest(w, errorhandler.UserMessage(http.StatusBadRequest))
		return
	}

	exists, err := h.storage.Exists(r.Context(), req.Key)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}
	if !exists {
		response.NotFound(w, "The uploaded image was not found.")
		return
	}

	if err := h.repo.CreateImage(r.Context(), &Image{
		ID:      uuid.New(),
		HotelID: id,
		Key:     req.Key,
	}); err != nil {
		errorhandler.LogDatabaseError(r.Context(), "hotels.confirm_image", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	url := h.storage.GetURL(req.Key)
	if err := h.repo.AppendImageURL(r.Context(), id, url); err != nil {
		errorhandler.LogDatabaseError(r.Context(), "hotels.append_image", err)
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "", err)
		return
	}

	h.wakeWorker(r.Context())

	response.OKWithMessage(w, map[string]string{"url": url}, "Image registered.")
}

func (h *Handler) wakeWorker(ctx context.Context) {
	if h.redis == nil {
		return
	}
	h.redis.Publish(ctx, WakeupChannel, "1")
}

func parsePaging(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
