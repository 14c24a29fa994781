package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/books-gateway/internal/document"
	"github.com/gogotex/books-gateway/internal/document/service"
	"github.com/gogotex/books-gateway/pkg/logger"
	"github.com/gogotex/books-gateway/pkg/metrics"
)

const (
	MsgHealthy        = "MongoDB connection is healthy."
	MsgConnError      = "MongoDB connection error: "
	MsgCreated        = "Document created successfully"
	MsgUpdated        = "Document updated successfully"
	MsgNotUpdated     = "Query Executed, No Document Updated"
	MsgDeleted        = "Document deleted successfully"
	MsgDeleteNotFound = "Document not found"
)

// RegisterDocumentRoutes wires the five gateway endpoints onto r.
func RegisterDocumentRoutes(r gin.IRoutes, svc service.Service) {
	h := &documentHandler{svc: svc}
	r.GET("/check", h.check)
	r.POST("/create", h.create)
	r.GET("/read", h.read)
	r.PUT("/update/:id", h.update)
	r.DELETE("/delete/:id", h.delete)
}

type documentHandler struct {
	svc service.Service
}

// check always answers 200; a failed ping is reported as a bare JSON string.
func (h *documentHandler) check(c *gin.Context) {
	if err := h.svc.Check(c.Request.Context()); err != nil {
		logger.Warnf("health check failed: %v", err)
		metrics.ObserveOperation("check", metrics.OutcomeStoreError)
		c.JSON(http.StatusOK, MsgConnError+err.Error())
		return
	}
	metrics.ObserveOperation("check", metrics.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"message": MsgHealthy})
}

func (h *documentHandler) create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, "create", err)
		return
	}
	id, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		fail(c, "create", err)
		return
	}
	metrics.ObserveOperation("create", metrics.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"message": MsgCreated, "id": id})
}

func (h *documentHandler) read(c *gin.Context) {
	out, err := h.svc.Read(c.Request.Context())
	if err != nil {
		fail(c, "read", err)
		return
	}
	metrics.ObserveOperation("read", metrics.OutcomeOK)
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (h *documentHandler) update(c *gin.Context) {
	id := c.Param("id")
	logger.Infof("Update for books _id : %s", id)
	body, err := c.GetRawData()
	if err != nil {
		fail(c, "update", err)
		return
	}
	modified, err := h.svc.Update(c.Request.Context(), id, body)
	if err != nil {
		fail(c, "update", err)
		return
	}
	if !modified {
		metrics.ObserveOperation("update", metrics.OutcomeNoop)
		c.JSON(http.StatusOK, gin.H{"message": MsgNotUpdated})
		return
	}
	metrics.ObserveOperation("update", metrics.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"message": MsgUpdated})
}

func (h *documentHandler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "delete", err)
		return
	}
	if !deleted {
		metrics.ObserveOperation("delete", metrics.OutcomeNoop)
		c.JSON(http.StatusOK, gin.H{"message": MsgDeleteNotFound})
		return
	}
	metrics.ObserveOperation("delete", metrics.OutcomeOK)
	c.JSON(http.StatusOK, gin.H{"message": MsgDeleted})
}

// fail maps malformed input to 400 and everything else (store errors) to 500.
func fail(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	if errors.Is(err, document.ErrInvalidBody) || errors.Is(err, document.ErrInvalidID) {
		metrics.ObserveOperation(op, metrics.OutcomeClientError)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Errorf("%s failed: %v", op, err)
	metrics.ObserveOperation(op, metrics.OutcomeStoreError)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
