package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-kiosk-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	// Kiosk
	Status(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)

	// Admin
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Sweep(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

// NewAttendanceHandler builds the kiosk and report handlers. now should return the
// time in the kiosk location so dates in responses match the kiosk calendar.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, now func() time.Time) AttendanceHandler {
	if now == nil {
		now = time.Now
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		now:               now,
	}
}

func isJSONContent(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// wantsJSON tells API clients apart from the kiosk's plain HTML form.
func wantsJSON(r *http.Request) bool {
	return isJSONContent(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

func decodeSubmitRequest(r *http.Request) (attendance.SubmitRequest, error) {
	var req attendance.SubmitRequest
	if isJSONContent(r) {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.PostForm.Get("nama")
	req.EmployeeNumber = r.PostForm.Get("nip")
	req.Type = r.PostForm.Get("absen_type")
	return req, nil
}

func submitMessage(result attendance.SubmitResult) string {
	if result.Action == attendance.ActionClockOut {
		return "Clock-out recorded. Thank you for today."
	}
	if result.SeatNumber == 0 {
		return fmt.Sprintf("Clock-in recorded, you are %s.", result.Remark)
	}
	return fmt.Sprintf("Clock-in recorded, you are %s. Your seat number is %d.", result.Remark, result.SeatNumber)
}

// flashForError turns a submission error into the message shown on the kiosk.
func flashForError(err error) Flash {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Flash{Level: FlashError, Message: validationErrs.Error()}
	}
	_, detail := response.Resolve(err)
	level := FlashError
	if errors.Is(err, attendance.ErrAlreadyClockedIn) {
		level = FlashWarning
	}
	return Flash{Level: level, Message: detail.Message}
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.KioskStatus(r.Context(), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	jsonClient := wantsJSON(r)

	req, err := decodeSubmitRequest(r)
	if err != nil {
		slog.Warn("Submit decode error", "error", err)
		if jsonClient {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		redirectWithFlash(w, r, Flash{Level: FlashError, Message: "Invalid request format"})
		return
	}

	result, err := h.attendanceService.Submit(r.Context(), req, h.now())
	if err != nil {
		if jsonClient {
			response.HandleError(w, err)
			return
		}
		if status, _ := response.Resolve(err); status >= http.StatusInternalServerError {
			slog.Error("Submit service error", "error", err)
		}
		redirectWithFlash(w, r, flashForError(err))
		return
	}

	message := submitMessage(result)
	if jsonClient {
		response.SuccessWithMessage(w, message, result)
		return
	}
	redirectWithFlash(w, r, Flash{Level: FlashSuccess, Message: message})
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.AttendanceFilter{}

	optional := []struct {
		param  string
		target **string
	}{
		{"search", &filter.Search},
		{"date", &filter.Date},
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
		{"status", &filter.Status},
		{"remark", &filter.Remark},
	}
	for _, o := range optional {
		if v := query.Get(o.param); v != "" {
			*o.target = &v
		}
	}

	if p := query.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := query.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	results, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Attendances, &response.Meta{
		Page:       results.Page,
		Limit:      results.Limit,
		TotalItems: results.TotalCount,
		TotalPages: results.TotalPages,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// Sweep implements AttendanceHandler.
func (h *attendanceHandlerImpl) Sweep(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	marked, err := h.attendanceService.SweepAbsentees(r.Context(), now)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.SweepResponse{
		Date:         now.Format("2006-01-02"),
		MarkedAbsent: marked,
	})
}
