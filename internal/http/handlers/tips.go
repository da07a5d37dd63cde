package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apierrors "github.com/pribylovaa/invest-tips/internal/errors"
	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/query"
)

const (
	msgNoTips      = "no investment tips found"
	msgNoTipsMatch = "no investment tips match the given criteria"
	msgTipNotFound = "investment tip not found"
	msgInvalidID   = "invalid investment tip id"
)

// ListTips - GET /tips: фильтры category и riskLevel.
func (h *Handlers) ListTips(w http.ResponseWriter, r *http.Request) {
	h.listTips(w, r, query.ListFields, msgNoTips)
}

// SearchTips - GET /tips/search: плюс searchTerm, minReturn, maxReturn, tags.
func (h *Handlers) SearchTips(w http.ResponseWriter, r *http.Request) {
	h.listTips(w, r, query.SearchFields, msgNoTipsMatch)
}

func (h *Handlers) listTips(w http.ResponseWriter, r *http.Request, fields query.Fields, notFound string) {
	q, err := query.Build(query.ParamsFromValues(r.URL.Query()), fields)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListTips(r.Context(), q)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	respondPage(w, r, page, notFound)
}

// respondPage: пустая первая страница - 404, пустая страница N>1 - 200 с data: [].
func respondPage(w http.ResponseWriter, r *http.Request, page *models.TipPage, notFound string) {
	if len(page.Tips) == 0 && page.CurrentPage <= 1 {
		apierrors.WriteError(w, r, status.Error(codes.NotFound, notFound))
		return
	}

	writeJSON(w, http.StatusOK, TipListResponse{
		Data:        tipsFromModels(page.Tips),
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		TotalTips:   page.Total,
	})
}

// GetTip - GET /tips/{id}.
func (h *Handlers) GetTip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		apierrors.WriteError(w, r, invalidArgument(msgInvalidID))
		return
	}

	tip, err := h.svc.TipByID(r.Context(), id)
	if err != nil {
		if apierrors.Status(err).Code() == codes.NotFound {
			err = status.Error(codes.NotFound, msgTipNotFound)
		}
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tipFromModel(*tip))
}
