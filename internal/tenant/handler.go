package tenant

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/rental-management-backend/utils"
)

const uploadFolder = "tenants"

type Handler struct {
	Service Service
	Storage utils.Storage
}

func NewHandler(s Service, storage utils.Storage) *Handler {
	return &Handler{Service: s, Storage: storage}
}

// Documents and the photo arrive as multipart file parts; fields that are
// not re-uploaded keep the URL sent back in the matching *_url form value.
var documentFields = []string{
	"doc_aadhar", "doc_pan", "doc_voter", "doc_license", "doc_police", "doc_agreement",
}

func (h *Handler) saveFilePart(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return h.Storage.Save(data, uploadFolder, fh.Filename)
}

func (h *Handler) collectUploads(c *gin.Context) (photoURL string, docs Documents, err error) {
	urls := make(map[string]string, len(documentFields))
	for _, field := range documentFields {
		urls[field] = c.PostForm(field + "_url")
	}
	photoURL = c.PostForm("photo_url")

	if fh, ferr := c.FormFile("photo"); ferr == nil {
		if photoURL, err = h.saveFilePart(fh); err != nil {
			return "", Documents{}, err
		}
	}
	for _, field := range documentFields {
		if fh, ferr := c.FormFile(field); ferr == nil {
			if urls[field], err = h.saveFilePart(fh); err != nil {
				return "", Documents{}, err
			}
		}
	}

	docs = Documents{
		Aadhar:    urls["doc_aadhar"],
		Pan:       urls["doc_pan"],
		Voter:     urls["doc_voter"],
		License:   urls["doc_license"],
		Police:    urls["doc_police"],
		Agreement: urls["doc_agreement"],
	}
	return photoURL, docs, nil
}

func parseRooms(raw string) ([]RoomAssignment, error) {
	if raw == "" {
		return nil, nil
	}
	var rooms []RoomAssignment
	if err := json.Unmarshal([]byte(raw), &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// CreateTenant - POST /tenants (multipart)
func (h *Handler) CreateTenant(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	rooms, err := parseRooms(c.PostForm("rooms"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rooms must be a JSON array of {id, price}"})
		return
	}

	photoURL, docs, err := h.collectUploads(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded files"})
		return
	}

	in := CreateTenantInput{
		FullName:   c.PostForm("full_name"),
		Phone:      c.PostForm("phone"),
		MoveInDate: parseDate(c.PostForm("move_in_date")),
		Rooms:      rooms,
		PhotoURL:   photoURL,
		Documents:  docs,
	}

	t, err := h.Service.Create(c.Request.Context(), adminID, in, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrMissingFields.Error()})
		case errors.Is(err, ErrPhoneInUse):
			c.JSON(http.StatusConflict, gin.H{"error": ErrPhoneInUse.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tenant"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Tenant created and rooms assigned successfully",
		"tenantId": t.ID,
	})
}

// ListTenants - GET /tenants
func (h *Handler) ListTenants(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	tenants, err := h.Service.List(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tenants": tenants})
}

// GetTenant - GET /tenants/:id
func (h *Handler) GetTenant(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	t, err := h.Service.Get(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenant"})
		return
	}

	rooms, err := h.Service.GetRooms(c.Request.Context(), adminID, t.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tenant rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tenant": t, "rooms": rooms})
}

// UpdateTenant - PATCH /tenants/:id (multipart)
func (h *Handler) UpdateTenant(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	rooms, err := parseRooms(c.PostForm("rooms"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rooms must be a JSON array of {id, price}"})
		return
	}

	photoURL, docs, err := h.collectUploads(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded files"})
		return
	}

	in := UpdateTenantInput{
		FullName:    c.PostForm("full_name"),
		Phone:       c.PostForm("phone"),
		MoveInDate:  parseDate(c.PostForm("move_in_date")),
		MoveOutDate: parseDate(c.PostForm("move_out_date")),
		Rooms:       rooms,
		PhotoURL:    &photoURL,
		Documents:   &docs,
	}

	t, err := h.Service.Update(c.Request.Context(), adminID, c.Param("id"), in, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		case errors.Is(err, ErrPhoneInUse):
			c.JSON(http.StatusConflict, gin.H{"error": ErrPhoneInUse.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tenant"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tenant updated successfully",
		"tenant":  t,
	})
}

// DeleteTenant - DELETE /tenants/:id
func (h *Handler) DeleteTenant(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	if err := h.Service.Delete(c.Request.Context(), adminID, c.Param("id"), c.ClientIP()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tenant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tenant deleted successfully"})
}
