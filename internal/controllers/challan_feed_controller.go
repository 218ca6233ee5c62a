package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	logrus "github.com/sirupsen/logrus"
	"github.com/golang-jwt/jwt/v5"

	"autofine/internal/config"
	"autofine/internal/middleware"
	"autofine/internal/models"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// FeedHub fans challan lifecycle events out to connected dashboards.
// Key 0 holds the admin firehose; other keys are per-vehicle owner
// subscriptions.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*websocket.Conn]bool

	register   chan feedSubscription
	unregister chan feedSubscription
	events     chan map[string]interface{}
}

type feedSubscription struct {
	vehicleID uint
	conn      *websocket.Conn
}

// ChallanHub is the process-wide feed, started at init.
var ChallanHub = NewFeedHub()

func NewFeedHub() *FeedHub {
	h := &FeedHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		register:   make(chan feedSubscription),
		unregister: make(chan feedSubscription),
		events:     make(chan map[string]interface{}, 64),
	}
	go h.run()
	return h
}

func (h *FeedHub) run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.vehicleID] == nil {
				h.clients[sub.vehicleID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.vehicleID][sub.conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if conns := h.clients[sub.vehicleID]; conns != nil {
				delete(conns, sub.conn)
				if len(conns) == 0 {
					delete(h.clients, sub.vehicleID)
				}
			}
			h.mu.Unlock()
			sub.conn.Close()

		case event := <-h.events:
			h.broadcast(event)
		}
	}
}

func (h *FeedHub) broadcast(event map[string]interface{}) {
	vehicleID, _ := event["vehicle_id"].(uint)

	h.mu.RLock()
	targets := make([]*websocket.Conn, 0)
	for conn := range h.clients[0] {
		targets = append(targets, conn)
	}
	if vehicleID != 0 {
		for conn := range h.clients[vehicleID] {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.WriteJSON(event); err != nil {
			logrus.WithError(err).Debug("dropping slow challan feed client")
			conn.Close()
		}
	}
}

// RegisterClient subscribes a connection to one vehicle's events, or
// to everything when vehicleID is 0.
func (h *FeedHub) RegisterClient(vehicleID uint, conn *websocket.Conn) {
	h.register <- feedSubscription{vehicleID: vehicleID, conn: conn}
}

func (h *FeedHub) UnregisterClient(vehicleID uint, conn *websocket.Conn) {
	h.unregister <- feedSubscription{vehicleID: vehicleID, conn: conn}
}

// Publish queues an event; drops it if the feed is saturated rather
// than blocking a lifecycle operation.
func (h *FeedHub) Publish(event map[string]interface{}) {
	select {
	case h.events <- event:
	default:
		logrus.Warn("challan feed saturated, dropping event")
	}
}

func feedEvent(kind string, challan *models.Challan) map[string]interface{} {
	return map[string]interface{}{
		"event":          kind,
		"vehicle_id":     challan.VehicleID,
		"challan_id":     challan.ID,
		"uin":            challan.UIN,
		"violation_type": challan.ViolationType,
		"fine_amount":    challan.FineAmount,
		"status":         challan.Status,
	}
}

// authenticateForFeed validates the JWT passed as a query parameter
// (browsers cannot set headers on WebSocket dials).
func authenticateForFeed(c *gin.Context) (userID uint, role string, err error) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		return 0, "", errors.New("missing token query parameter")
	}
	token, err := middleware.ValidateToken(tokenStr)
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	id, _ := claims["user_id"].(float64)
	r, _ := claims["role"].(string)
	return uint(id), r, nil
}

// ChallanFeed upgrades to a WebSocket and streams challan events.
// Admins get the firehose; owners must name a vehicle they own.
func ChallanFeed(c *gin.Context) {
	userID, role, err := authenticateForFeed(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var vehicleID uint
	if role != "admin" {
		vehIDStr := c.Query("vehicle_id")
		vehID, err := strconv.ParseUint(vehIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_id query parameter required"})
			return
		}
		var vehicle models.Vehicle
		if err := config.DB.Where("id = ? AND owner_id = ?", uint(vehID), userID).
			First(&vehicle).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found or not yours"})
			return
		}
		vehicleID = vehicle.ID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}

	ChallanHub.RegisterClient(vehicleID, conn)
	go func() {
		defer ChallanHub.UnregisterClient(vehicleID, conn)
		for {
			// feed is one-way; reads only detect disconnects
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
