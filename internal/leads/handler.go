package leads

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/atomslab/lead-intake-api/internal/observability/metrics"
	"github.com/atomslab/lead-intake-api/pkg/logging"
)

// Notifier is told about each stored lead. Implementations must not block
// the request path; failures must stay on their side of the fence.
type Notifier interface {
	LeadCaptured(lead *Lead)
}

// Handler handles HTTP requests for lead submissions
type Handler struct {
	repo         Repository
	notifier     Notifier
	metrics      *metrics.IntakeMetrics
	storeTimeout time.Duration
	logger       *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, notifier Notifier, m *metrics.IntakeMetrics, storeTimeout time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &Handler{
		repo:         repo,
		notifier:     notifier,
		metrics:      m,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Submit handles POST /api/lead: gate → validate → normalize → write →
// (background) notify → respond.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, submitResponse{Error: "Richiesta troppo grande"})
			return
		}
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "Richiesta non valida"})
		return
	}

	// Honeypot first: answer success, persist nothing, notify nobody. The
	// response must be indistinguishable from a real accept.
	if sub.HoneypotTripped() {
		h.metrics.ObserveSubmission(metrics.OutcomeDropped)
		h.logger.Info("honeypot tripped, dropping submission", "fonte", sub.Fonte)
		writeJSON(w, http.StatusOK, submitResponse{Success: true})
		return
	}

	if err := sub.Validate(); err != nil {
		var verr ValidationError
		if !errors.As(err, &verr) {
			verr = ValidationError{Message: "Richiesta non valida"}
		}
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: verr.Message})
		return
	}

	lead := sub.Normalize()

	ctx, cancel := context.WithTimeout(r.Context(), h.storeTimeout)
	defer cancel()
	if err := h.repo.Upsert(ctx, lead); err != nil {
		// Full detail stays in the server log; the client gets the fixed
		// generic message, never provider error text.
		h.logger.Error("lead upsert failed", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeError)
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "Errore salvataggio lead"})
		return
	}

	h.logger.Info("lead stored", "email", lead.Email, "fonte", lead.Fonte)
	if h.notifier != nil {
		h.notifier.LeadCaptured(lead)
	}

	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	writeJSON(w, http.StatusOK, submitResponse{Success: true})
}

func decodeSubmission(r *http.Request) (*Submission, error) {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		if parsed, _, err := mime.ParseMediaType(ct); err == nil {
			ct = parsed
		}
	}
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		return decodeForm(r, ct)
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func decodeForm(r *http.Request, ct string) (*Submission, error) {
	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(1 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, err
	}
	f := r.PostForm
	return &Submission{
		FirstName:       f.Get("firstName"),
		LastName:        f.Get("lastName"),
		Email:           f.Get("email"),
		Phone:           f.Get("phone"),
		Telefono:        f.Get("telefono"),
		PharmacyName:    f.Get("pharmacyName"),
		Role:            f.Get("role"),
		Revenue:         f.Get("revenue"),
		AnnualRev:       f.Get("annualRevenue"),
		Challenge:       f.Get("challenge"),
		Messaggio:       f.Get("messaggio"),
		Privacy:         FlexBool(CoerceBool(f.Get("privacy"))),
		ConsensoPrivacy: FlexBool(CoerceBool(f.Get("consenso_privacy"))),
		Fonte:           f.Get("fonte"),
		UTMSource:       f.Get("utm_source"),
		UTMMedium:       f.Get("utm_medium"),
		UTMCampaign:     f.Get("utm_campaign"),
		Company:         strings.TrimSpace(f.Get("company")),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
