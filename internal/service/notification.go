package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleetflow/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripDispatched  NotificationType = "TRIP_DISPATCHED"
	NotificationTripCompleted   NotificationType = "TRIP_COMPLETED"
	NotificationVehicleInShop   NotificationType = "VEHICLE_IN_SHOP"
	NotificationVehicleReturned NotificationType = "VEHICLE_RETURNED"
)

// Notification represents an operational notification.
type Notification struct {
	Type      NotificationType
	Subject   string // vehicle plate or trip id the event concerns
	Title     string
	Message   string
	Data      map[string]interface{}
	CreatedAt time.Time
}

// NotificationService delivers operational notifications to the dispatch
// desk. Delivery is a log line here; a deployment with a real channel (push,
// email, chat webhook) swaps the send implementation.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripDispatched announces a new dispatched trip.
func (s *NotificationService) NotifyTripDispatched(ctx context.Context, trip *domain.Trip, plate, driverName string) error {
	return s.send(ctx, Notification{
		Type:    NotificationTripDispatched,
		Subject: trip.ID,
		Title:   "Trip Dispatched",
		Message: fmt.Sprintf("%s assigned to %s with %.0fkg of cargo", plate, driverName, trip.CargoWeight),
		Data: map[string]interface{}{
			"trip_id":      trip.ID,
			"vehicle_id":   trip.VehicleID,
			"driver_id":    trip.DriverID,
			"cargo_weight": trip.CargoWeight,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyTripCompleted announces a completed trip.
func (s *NotificationService) NotifyTripCompleted(ctx context.Context, trip *domain.Trip, plate string, finalOdometer float64) error {
	return s.send(ctx, Notification{
		Type:    NotificationTripCompleted,
		Subject: trip.ID,
		Title:   "Trip Completed",
		Message: fmt.Sprintf("%s returned at %.0fkm; vehicle and driver freed", plate, finalOdometer),
		Data: map[string]interface{}{
			"trip_id":        trip.ID,
			"vehicle_id":     trip.VehicleID,
			"final_odometer": finalOdometer,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyVehicleInShop announces a vehicle pulled into the shop.
func (s *NotificationService) NotifyVehicleInShop(ctx context.Context, plate string, cost float64) error {
	return s.send(ctx, Notification{
		Type:    NotificationVehicleInShop,
		Subject: plate,
		Title:   "Vehicle In Shop",
		Message: fmt.Sprintf("%s pulled from rotation, service cost $%.2f", plate, cost),
		Data: map[string]interface{}{
			"plate": plate,
			"cost":  cost,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyVehicleReturned announces a vehicle returning to the available fleet.
func (s *NotificationService) NotifyVehicleReturned(ctx context.Context, plate string) error {
	return s.send(ctx, Notification{
		Type:    NotificationVehicleReturned,
		Subject: plate,
		Title:   "Vehicle Returned",
		Message: fmt.Sprintf("%s back in the available fleet", plate),
		Data: map[string]interface{}{
			"plate": plate,
		},
		CreatedAt: time.Now(),
	})
}

// send delivers a notification (log implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Subject=%s, Title=%s, Message=%s",
		notification.Type, notification.Subject, notification.Title, notification.Message)
	return nil
}
