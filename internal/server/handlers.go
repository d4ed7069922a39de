package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/chat"
	"github.com/levelup-labs/jobscout/internal/jobs"
	"github.com/levelup-labs/jobscout/internal/profile"
	"github.com/levelup-labs/jobscout/internal/report"
	"github.com/levelup-labs/jobscout/internal/search"
	"github.com/levelup-labs/jobscout/internal/session"
)

const searchUnavailableNotice = "Job search is temporarily unavailable. Please try again in a moment."

// Handler wires the pipeline, stores and renderer to the request surface.
type Handler struct {
	Pipeline *jobs.Pipeline
	Sessions session.Store
	Chat     *chat.Orchestrator
	Renderer *report.Renderer
	Cookies  *CookieManager
	Logger   *zap.Logger
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/", h.Search)
	e.GET("/download", h.Download)
	e.POST("/chat", h.ChatSubmit)
}

type viewData struct {
	Listings []jobs.Listing
	Chat     []chat.Message
	Notice   string
	Error    string
}

func (h *Handler) view(c echo.Context, sessionID string, data viewData) error {
	data.Chat = h.Chat.Store.Messages(sessionID)
	return c.Render(http.StatusOK, "index", data)
}

// Index renders the stored listings and chat log for the session.
func (h *Handler) Index(c echo.Context) error {
	sessionID := h.Cookies.SessionID(c)

	listings, _, err := h.Sessions.LoadListings(c.Request().Context(), sessionID)
	if err != nil {
		h.Logger.Warn("loading session listings", zap.String("session_id", sessionID), zap.Error(err))
	}

	return h.view(c, sessionID, viewData{Listings: listings})
}

// Search runs the full search, enrich and store pass for the posted profile.
func (h *Handler) Search(c echo.Context) error {
	sessionID := h.Cookies.SessionID(c)
	ctx := c.Request().Context()

	prof := profile.Profile{
		Title:      c.FormValue("job_title"),
		Location:   c.FormValue("location"),
		Age:        c.FormValue("age"),
		Education:  c.FormValue("education"),
		Experience: c.FormValue("experience"),
	}

	listings, err := h.Pipeline.Run(ctx, prof)
	if err != nil {
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			return h.view(c, sessionID, viewData{Error: verr.Error()})
		}

		var unavailable *search.UnavailableError
		if errors.As(err, &unavailable) {
			h.Logger.Warn("search degraded", zap.String("session_id", sessionID), zap.Error(err))
			return h.view(c, sessionID, viewData{Notice: searchUnavailableNotice})
		}

		return err
	}

	if err := h.Sessions.SaveListings(ctx, sessionID, listings); err != nil {
		h.Logger.Error("saving session listings", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}

	return h.view(c, sessionID, viewData{Listings: listings})
}

// Download streams the stored listing set as a PDF attachment. Sessions
// without results redirect back to the form.
func (h *Handler) Download(c echo.Context) error {
	sessionID := h.Cookies.SessionID(c)

	listings, ok, err := h.Sessions.LoadListings(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return c.Redirect(http.StatusFound, "/")
	}

	data, err := h.Renderer.Render(listings)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="job_details.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// ChatSubmit handles one chat turn and sends the user back to the results.
func (h *Handler) ChatSubmit(c echo.Context) error {
	sessionID := h.Cookies.SessionID(c)

	h.Chat.Submit(c.Request().Context(), sessionID, c.FormValue("chat_message"))

	return c.Redirect(http.StatusSeeOther, "/")
}
