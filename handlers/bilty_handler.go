package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"sangamtransport/models"
	"sangamtransport/repository"
	"sangamtransport/utils"

	"github.com/google/uuid"
)

const maxImageUpload = 10 << 20 // 10 MB

type BiltyHandler struct {
	Repo repository.BiltyRepository
}

// CreateStationBilty records an inbound consignment reported by a station.
func (h *BiltyHandler) CreateStationBilty(w http.ResponseWriter, r *http.Request) {
	var s models.StationBilty
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if s.GRNo == 0 || s.Station == "" {
		writeError(w, http.StatusBadRequest, "gr_no and station are required")
		return
	}

	if err := h.Repo.CreateStationBilty(&s); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create station bilty: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: s})
}

// UploadImage stores a consignment photo in R2 and writes the public URL back
// onto the record. Regular bilties go to the bilty bucket, station bilties to
// transit-bilty.
func (h *BiltyHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}
	biltyType := models.ConsignmentType(r.FormValue("type"))
	if biltyType != models.ConsignmentRegular && biltyType != models.ConsignmentStation {
		writeError(w, http.StatusBadRequest, "type must be regular or station")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUpload))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload: "+err.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "only image uploads are accepted")
		return
	}

	bucket := utils.BucketBilty
	if biltyType == models.ConsignmentStation {
		bucket = utils.BucketTransitBilty
	}
	ext := filepath.Ext(header.Filename)
	key := strconv.FormatInt(id, 10) + "_" + uuid.NewString()[:8] + ext

	url, err := utils.UploadToR2(bucket, key, data, contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to upload image: "+err.Error())
		return
	}

	if err := h.Repo.UpdateImageURL(biltyType, id, url); err != nil {
		// Keep the object; the URL can be re-attached manually.
		writeError(w, http.StatusInternalServerError, "failed to save image url: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Image uploaded",
		Data:    map[string]string{"image_url": url},
	})
}
