package server

import (
	"fmt"
	"net/http"

	"bloodconnect/internal/matching"
	"bloodconnect/internal/service"
	"bloodconnect/pkg/types"
)

type RequestFormPageData struct {
	types.BasePageData
	Form       types.BloodRequestForm
	BloodTypes []types.BloodType
	Urgencies  []types.Urgency
}

type RequestSubmittedPageData struct {
	types.BasePageData
	Result *service.SubmitResult
}

type RequestListPageData struct {
	types.BasePageData
	Requests []*types.BloodRequest
}

type ResponseRow struct {
	DonorName string
	Response  types.DonorResponse
}

type RequestDetailPageData struct {
	types.BasePageData
	Request   *types.BloodRequest
	Responses []ResponseRow
	Matches   []matching.Match
	RadiusKm  float64
}

func (s *Service) requestFormPage(r *http.Request, form types.BloodRequestForm) *RequestFormPageData {
	return &RequestFormPageData{
		BasePageData: basePage(r, "Emergency Blood Request"),
		Form:         form,
		BloodTypes:   types.BloodTypes,
		Urgencies:    types.Urgencies,
	}
}

func (s *Service) handleGetNewRequest(w http.ResponseWriter, r *http.Request) {
	data := s.requestFormPage(r, types.BloodRequestForm{
		UnitsNeeded: 1,
		Urgency:     string(types.UrgencyHigh),
		Latitude:    types.DefaultLatitude,
		Longitude:   types.DefaultLongitude,
	})

	if err := s.renderTemplate(w, r, "page.request-new", data); err != nil {
		s.logger.WithError(err).Error("failed to render new request page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/requests/new", "invalid form payload")
		return
	}

	var form types.BloodRequestForm
	if err := decoder.Decode(&form, nonEmpty(r.PostForm)); err != nil {
		s.logger.WithError(err).Info("failed to decode request form")
		s.redirectWithError(w, r, "/requests/new", "invalid form payload")
		return
	}

	result, err := s.app.Submit(r.Context(), &form)
	if err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			s.logger.WithError(err).Error("failed to submit blood request")
			s.internalServerError(w)
			return
		}

		data := s.requestFormPage(r, form)
		data.FieldErrors = fields
		data.Error = "Please fill in all required fields."

		if err := s.renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "page.request-new", data); err != nil {
			s.logger.WithError(err).Error("failed to render request page with validation errors")
		}
		return
	}

	data := &RequestSubmittedPageData{
		BasePageData: basePage(r, "Request Submitted"),
		Result:       result,
	}
	if len(result.Matches) == 0 {
		data.Error = "No compatible donors found in the area. Try expanding the search radius."
	} else {
		data.Notice = fmt.Sprintf("Emergency request submitted! Notified %d nearby donors.", len(result.Notified))
	}

	if err := s.renderTemplateStatus(w, r, http.StatusCreated, "page.request-submitted", data); err != nil {
		s.logger.WithError(err).Error("failed to render request submitted page")
	}
}

func (s *Service) handleRequestList(w http.ResponseWriter, r *http.Request) {
	requests, err := s.app.Requests(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list requests")
		s.internalServerError(w)
		return
	}

	data := &RequestListPageData{
		BasePageData: basePage(r, "Blood Requests"),
		Requests:     requests,
	}

	if err := s.renderTemplate(w, r, "page.requests", data); err != nil {
		s.logger.WithError(err).Error("failed to render requests page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleRequestDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := s.app.Request(ctx, r.PathValue("id"))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to load request")
		s.internalServerError(w)
		return
	}

	donors, err := s.app.Donors(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load donors")
		s.internalServerError(w)
		return
	}

	names := make(map[string]string, len(donors))
	for _, d := range donors {
		names[d.ID] = d.Name
	}

	data := &RequestDetailPageData{
		BasePageData: basePage(r, "Request for "+request.PatientName),
		Request:      request,
		RadiusKm:     s.app.Policy().Radius(request.Urgency),
	}

	for _, resp := range request.Responses {
		data.Responses = append(data.Responses, ResponseRow{DonorName: names[resp.DonorID], Response: resp})
	}

	if request.Status == types.RequestStatusActive {
		matches, err := s.app.RequestMatches(ctx, request)
		if err != nil {
			s.logger.WithError(err).Warn("failed to rank donors for request")
		}
		data.Matches = matches
	}

	if err := s.renderTemplate(w, r, "page.request-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render request detail page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostCancelRequest(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("id")
	back := "/requests/" + requestID

	if _, err := s.app.CancelRequest(r.Context(), requestID); err != nil {
		if statusFor(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to cancel request")
		s.redirectWithError(w, r, back, userMessage(err))
		return
	}

	s.redirectWithNotice(w, r, back, "Request cancelled.")
}
