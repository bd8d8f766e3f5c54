package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradedesk/internal/errors"
	"tradedesk/internal/models"
	"tradedesk/internal/services"
)

// RecordHandler serves the list/add/validate/update/delete screens of one
// record kind.
type RecordHandler[T any, P models.Record[T]] struct {
	service services.RecordServicer[T]
	kind    string
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler[T any, P models.Record[T]](service services.RecordServicer[T]) *RecordHandler[T, P] {
	return &RecordHandler[T, P]{service: service, kind: P(new(T)).Kind()}
}

// Kind returns the route segment the handler is mounted under.
func (h *RecordHandler[T, P]) Kind() string { return h.kind }

// List returns every record of the kind
// @Summary     List records
// @Description Returns every record of the kind with the caller's username
// @Tags        records
// @Produce     json
// @Success     200 {object} map[string]interface{} "Records"
// @Failure     302 "Redirect to login"
// @Router      /bidList/list [get]
// @Router      /curvePoint/list [get]
// @Router      /rating/list [get]
// @Router      /ruleName/list [get]
// @Router      /trade/list [get]
func (h *RecordHandler[T, P]) List(c *gin.Context) {
	recs, err := h.service.GetAll(c.Request.Context(), currentActor(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		h.kind + "s": recs,
	})
}

// AddForm returns a blank record for the add screen
// @Summary     Blank record form
// @Tags        records
// @Produce     json
// @Success     200 {object} map[string]interface{} "Blank record"
// @Router      /bidList/add [get]
// @Router      /curvePoint/add [get]
// @Router      /rating/add [get]
// @Router      /ruleName/add [get]
// @Router      /trade/add [get]
func (h *RecordHandler[T, P]) AddForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		h.kind:       new(T),
	})
}

// Validate binds and creates a new record
// @Summary     Create a record
// @Tags        records
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       request body object true "Record fields"
// @Success     201 {object} map[string]interface{} "Record created"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Router      /bidList/validate [post]
// @Router      /curvePoint/validate [post]
// @Router      /rating/validate [post]
// @Router      /ruleName/validate [post]
// @Router      /trade/validate [post]
func (h *RecordHandler[T, P]) Validate(c *gin.Context) {
	rec := new(T)
	if err := c.ShouldBind(rec); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	P(rec).SetID(0)

	saved, err := h.service.Save(c.Request.Context(), currentActor(c), rec)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"remoteUser": remoteUser(c),
		h.kind:       saved,
	})
}

// UpdateForm returns the stored record for the edit screen
// @Summary     Record edit form
// @Tags        records
// @Produce     json
// @Param       id path int true "Record ID"
// @Success     200 {object} map[string]interface{} "Record"
// @Failure     404 {object} ErrorResponse "Invalid id"
// @Router      /bidList/update/{id} [get]
// @Router      /curvePoint/update/{id} [get]
// @Router      /rating/update/{id} [get]
// @Router      /ruleName/update/{id} [get]
// @Router      /trade/update/{id} [get]
func (h *RecordHandler[T, P]) UpdateForm(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, found, err := h.service.FindByID(c.Request.Context(), currentActor(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found {
		respondWithError(c, apperrors.NotFound(h.kind, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		h.kind:       rec,
	})
}

// Update binds the submitted fields and applies them to the stored record
// @Summary     Update a record
// @Description Copies only the mutable fields of the kind onto the stored record
// @Tags        records
// @Accept      json,x-www-form-urlencoded
// @Produce     json
// @Param       id path int true "Record ID"
// @Param       request body object true "Record fields"
// @Success     200 {object} map[string]interface{} "Record updated"
// @Failure     400 {object} ErrorResponse "Validation failed"
// @Failure     404 {object} ErrorResponse "Invalid id"
// @Router      /bidList/update/{id} [post]
// @Router      /curvePoint/update/{id} [post]
// @Router      /rating/update/{id} [post]
// @Router      /ruleName/update/{id} [post]
// @Router      /trade/update/{id} [post]
func (h *RecordHandler[T, P]) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec := new(T)
	if err := c.ShouldBind(rec); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	updated, err := h.service.UpdateByID(c.Request.Context(), currentActor(c), id, rec)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		h.kind:       updated,
	})
}

// Delete removes the record
// @Summary     Delete a record
// @Tags        records
// @Produce     json
// @Param       id path int true "Record ID"
// @Success     200 {object} map[string]interface{} "Record deleted"
// @Failure     404 {object} ErrorResponse "Invalid id"
// @Router      /bidList/delete/{id} [get]
// @Router      /curvePoint/delete/{id} [get]
// @Router      /rating/delete/{id} [get]
// @Router      /ruleName/delete/{id} [get]
// @Router      /trade/delete/{id} [get]
func (h *RecordHandler[T, P]) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.service.DeleteByID(c.Request.Context(), currentActor(c), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"remoteUser": remoteUser(c),
		"message":    h.kind + " deleted",
	})
}
