package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nodashin6/timeslotassigner/timeslot"
)

// The core registry is single-writer, so every handler goes through one
// lock. Read-only queries take the shared side.
var registry = timeslot.NewRegistry[string]()
var registryMutex = &sync.RWMutex{}

type slotRequest struct {
	Calendar string `json:"calendar"`
	Resource string `json:"resource"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Data     string `json:"data"`
}

func (req *slotRequest) bookingID() string {
	if req.Data != "" {
		return req.Data
	}
	return uuid.New().String()
}

func rangeStatus(err error) int {
	var rangeErr *timeslot.InvalidRangeError
	if errors.As(err, &rangeErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func AddSlot(c *gin.Context) {
	var body slotRequest

	if c.BindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read body",
		})
		return
	}

	if body.Calendar == "" || body.Resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing calendar or resource",
		})
		return
	}

	bookingID := body.bookingID()

	registryMutex.Lock()
	added, err := registry.AddSlot(body.Calendar, body.Resource, body.Start, body.End, bookingID)
	registryMutex.Unlock()

	if err != nil {
		c.JSON(rangeStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	if !added {
		c.JSON(http.StatusConflict, gin.H{
			"added": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"added":      true,
		"booking_id": bookingID,
	})
}

func AddSlotWithShift(c *gin.Context) {
	var body slotRequest

	if c.BindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read body",
		})
		return
	}

	if body.Calendar == "" || body.Resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing calendar or resource",
		})
		return
	}

	bookingID := body.bookingID()

	registryMutex.Lock()
	actualStart, actualEnd, err := registry.AddSlotWithShift(body.Calendar, body.Resource, body.Start, body.End, bookingID)
	registryMutex.Unlock()

	if err != nil {
		c.JSON(rangeStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":      actualStart,
		"end":        actualEnd,
		"booking_id": bookingID,
	})
}

func RemoveSlot(c *gin.Context) {
	var body struct {
		Calendar string `json:"calendar"`
		Resource string `json:"resource"`
		Start    int64  `json:"start"`
	}

	if c.BindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read body",
		})
		return
	}

	removed := false

	registryMutex.Lock()
	if group := registry.Calendar(body.Calendar); group != nil {
		if store := group.Store(body.Resource); store != nil {
			removed = store.Remove(body.Start)
		}
	}
	registryMutex.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
	})
}

func SlotsAt(c *gin.Context) {
	t, err := strconv.ParseInt(c.Query("time"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid time parameter",
		})
		return
	}

	calendar := c.Query("calendar")

	registryMutex.RLock()
	var slots map[string][]timeslot.ResourceSlot
	if calendar != "" {
		slots = registry.SlotsAtCalendar(t, calendar)
	} else {
		slots = registry.SlotsAt(t)
	}
	registryMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"slots": slots,
	})
}

func AllSlotsAt(c *gin.Context) {
	t, err := strconv.ParseInt(c.Query("time"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing or invalid time parameter",
		})
		return
	}

	registryMutex.RLock()
	slots := registry.AllSlotsAt(t)
	registryMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"slots": slots,
	})
}

func AddResource(c *gin.Context) {
	var body struct {
		Calendar string `json:"calendar"`
		Resource string `json:"resource"`
	}

	if c.BindJSON(&body) != nil || body.Calendar == "" || body.Resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing calendar or resource",
		})
		return
	}

	registryMutex.Lock()
	registry.AddResourceToCalendar(body.Calendar, body.Resource)
	registryMutex.Unlock()

	c.JSON(http.StatusOK, gin.H{})
}

func Resources(c *gin.Context) {
	calendar := c.Query("calendar")

	registryMutex.RLock()
	defer registryMutex.RUnlock()

	if calendar != "" {
		c.JSON(http.StatusOK, gin.H{
			"resources": registry.CalendarResources(calendar),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": registry.AllResources(),
	})
}

func BulkAssign(c *gin.Context) {
	var body []slotRequest

	if c.BindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid bulk assignment format",
		})
		return
	}

	assignments := make([]timeslot.Assignment[string], len(body))
	for i, req := range body {
		assignments[i] = timeslot.Assignment[string]{
			Key:        req.Calendar,
			ResourceID: req.Resource,
			Start:      req.Start,
			End:        req.End,
			Data:       req.bookingID(),
		}
	}

	registryMutex.Lock()
	results, err := registry.BulkAssignSlots(assignments)
	registryMutex.Unlock()

	resp := gin.H{"results": results}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func BulkAssignWithShift(c *gin.Context) {
	var body []slotRequest

	if c.BindJSON(&body) != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid bulk assignment format",
		})
		return
	}

	assignments := make([]timeslot.Assignment[string], len(body))
	for i, req := range body {
		assignments[i] = timeslot.Assignment[string]{
			Key:        req.Calendar,
			ResourceID: req.Resource,
			Start:      req.Start,
			End:        req.End,
			Data:       req.bookingID(),
		}
	}

	registryMutex.Lock()
	results, err := registry.BulkAssignSlotsWithShift(assignments)
	registryMutex.Unlock()

	resp := gin.H{"results": results}
	if err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
