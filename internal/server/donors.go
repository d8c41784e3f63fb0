package server

import (
	"fmt"
	"net/http"
	"strings"

	"bloodconnect/internal/service"
	"bloodconnect/pkg/types"
)

type RegisterPageData struct {
	types.BasePageData
	Form              types.DonorRegistrationForm
	BloodTypes        []types.BloodType
	MedicalConditions []string
}

type DonorSearchPageData struct {
	types.BasePageData
	Form       types.DonorSearchForm
	BloodTypes []types.BloodType
	Results    []service.DonorListing
}

type DonorDetailPageData struct {
	types.BasePageData
	Donor     *types.Donor
	Donations []*types.Donation
	Requests  []*types.BloodRequest
	IsCurrent bool
}

func (s *Service) handleGetRegister(w http.ResponseWriter, r *http.Request) {
	data := &RegisterPageData{
		BasePageData: basePage(r, "Register as Donor"),
		Form: types.DonorRegistrationForm{
			Latitude:  types.DefaultLatitude,
			Longitude: types.DefaultLongitude,
		},
		BloodTypes:        types.BloodTypes,
		MedicalConditions: types.MedicalConditionOptions,
	}

	if err := s.renderTemplate(w, r, "page.register", data); err != nil {
		s.logger.WithError(err).Error("failed to render register page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/donors/register", "invalid form payload")
		return
	}

	var form types.DonorRegistrationForm
	if err := decoder.Decode(&form, nonEmpty(r.PostForm)); err != nil {
		s.logger.WithError(err).Info("failed to decode registration form")
		s.redirectWithError(w, r, "/donors/register", "invalid form payload")
		return
	}

	donor, err := s.app.Register(r.Context(), &form)
	if err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			s.logger.WithError(err).Error("failed to register donor")
			s.internalServerError(w)
			return
		}

		data := &RegisterPageData{
			BasePageData:      basePage(r, "Register as Donor"),
			Form:              form,
			BloodTypes:        types.BloodTypes,
			MedicalConditions: types.MedicalConditionOptions,
		}
		data.FieldErrors = fields
		data.Error = "Please fill in all required fields and accept the terms."

		if err := s.renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "page.register", data); err != nil {
			s.logger.WithError(err).Error("failed to render register page with validation errors")
		}
		return
	}

	if err := s.setCurrentDonor(w, r, donor.ID); err != nil {
		s.logger.WithError(err).Warn("failed to set current donor cookie")
	}

	s.redirectWithNotice(w, r, "/donors/"+donor.ID, fmt.Sprintf("Welcome %s! You have been registered as a donor.", donor.Name))
}

func (s *Service) handleDonorSearch(w http.ResponseWriter, r *http.Request) {
	data := &DonorSearchPageData{
		BasePageData: basePage(r, "Find Donors"),
		BloodTypes:   types.BloodTypes,
	}

	if err := decoder.Decode(&data.Form, nonEmpty(r.URL.Query())); err != nil {
		data.Error = "invalid search filters"
	}

	if data.Error == "" {
		results, err := s.app.SearchDonors(r.Context(), &data.Form)
		switch {
		case err == nil:
			data.Results = results
		case statusFor(err) == http.StatusBadRequest:
			data.Error = err.Error()
		default:
			s.logger.WithError(err).Error("failed to search donors")
			s.internalServerError(w)
			return
		}
	}

	if err := s.renderTemplate(w, r, "page.donors", data); err != nil {
		s.logger.WithError(err).Error("failed to render donors page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleDonorDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donorID := r.PathValue("id")

	donor, err := s.app.Donor(ctx, donorID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to load donor")
		s.internalServerError(w)
		return
	}

	donations, err := s.app.DonorDonations(ctx, donorID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load donations")
		s.internalServerError(w)
		return
	}

	requests, err := s.app.ActiveRequests(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load active requests")
		s.internalServerError(w)
		return
	}

	data := &DonorDetailPageData{
		BasePageData: basePage(r, donor.Name),
		Donor:        donor,
		Donations:    donations,
		Requests:     requests,
		IsCurrent:    s.currentDonorID(r) == donor.ID,
	}

	if err := s.renderTemplate(w, r, "page.donor", data); err != nil {
		s.logger.WithError(err).Error("failed to render donor page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostDonation(w http.ResponseWriter, r *http.Request) {
	donorID := r.PathValue("id")
	back := "/donors/" + donorID

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, back, "invalid form payload")
		return
	}

	var form types.DonationForm
	if err := decoder.Decode(&form, nonEmpty(r.PostForm)); err != nil {
		s.redirectWithError(w, r, back, "invalid form payload")
		return
	}

	result, err := s.app.RecordDonation(r.Context(), donorID, &form)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			s.logger.WithError(err).Error("failed to record donation")
		}
		s.redirectWithError(w, r, back, userMessage(err))
		return
	}

	notice := fmt.Sprintf("Donation recorded, +%d points.", result.Donation.PointsAwarded)
	if len(result.NewBadges) > 0 {
		notice += fmt.Sprintf(" New badges: %s.", strings.Join(result.NewBadges, ", "))
	}
	if result.RequestFulfilled {
		notice += " The request is now fulfilled."
	}

	s.redirectWithNotice(w, r, back, notice)
}

func (s *Service) handlePostDonorStatus(w http.ResponseWriter, r *http.Request) {
	donorID := r.PathValue("id")
	back := "/donors/" + donorID

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, back, "invalid form payload")
		return
	}

	donor, err := s.app.SetAvailability(r.Context(), donorID, types.DonorStatus(r.PostForm.Get("status")))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			s.logger.WithError(err).Error("failed to update donor status")
		}
		s.redirectWithError(w, r, back, userMessage(err))
		return
	}

	s.redirectWithNotice(w, r, back, fmt.Sprintf("Status updated to %s.", donor.Status))
}

func (s *Service) handlePostSelectDonor(w http.ResponseWriter, r *http.Request) {
	donorID := r.PathValue("id")

	donor, err := s.app.Donor(r.Context(), donorID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to load donor")
		s.internalServerError(w)
		return
	}

	if err := s.setCurrentDonor(w, r, donor.ID); err != nil {
		s.logger.WithError(err).Error("failed to set current donor cookie")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/notifications", fmt.Sprintf("Now acting as %s.", donor.Name))
}
