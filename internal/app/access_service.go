package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/domain"
	"github.com/diegonavarro95/parkify/internal/fanout"
)

// AccessRepository is the storage surface the access service needs. All reads
// and writes issued inside the WithTx closure share one transaction.
type AccessRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetVehicle(ctx context.Context, id string) (domain.Vehicle, error)
	GetVehicleForUpdate(ctx context.Context, id string) (domain.Vehicle, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	LatestEventByVehicle(ctx context.Context, vehicleID string) (*domain.AccessEvent, error)
	CreateEvent(ctx context.Context, event domain.AccessEvent) error
	GetSlot(ctx context.Context, id string) (domain.Slot, error)
	OccupySlot(ctx context.Context, slotID, eventID string) error
	ReleaseSlot(ctx context.Context, slotID string) error
	CountSlotsByStatus(ctx context.Context, status domain.SlotStatus) (int, error)
	ListActiveStaff(ctx context.Context) ([]domain.User, error)
	CreateNotifications(ctx context.Context, notifications []domain.Notification) error
}

// PassResolver resolves or issues the active pass for a vehicle inside the
// caller's transaction context.
type PassResolver interface {
	ResolveForEntry(ctx context.Context, vehicle domain.Vehicle, owner domain.User) (domain.Pass, bool, error)
}

type AccessService struct {
	repo      AccessRepository
	passes    PassResolver
	publisher fanout.Publisher
	clock     clock.Clock
}

func NewAccessService(repo AccessRepository, passes PassResolver, publisher fanout.Publisher, clk clock.Clock) *AccessService {
	return &AccessService{
		repo:      repo,
		passes:    passes,
		publisher: publisher,
		clock:     clk,
	}
}

// Evaluation is the suggestion returned for a scanned vehicle. CandidateSlot
// is set when the suggested action is a salida that should release a slot.
type Evaluation struct {
	Vehicle         domain.Vehicle
	SuggestedAction domain.AccessType
	CandidateSlot   *domain.Slot
}

// Evaluate derives the next action for a scanned vehicle. Pure read: repeated
// calls mutate nothing and return the same suggestion absent concurrent writers.
func (s *AccessService) Evaluate(ctx context.Context, vehicleID string) (Evaluation, error) {
	vehicle, err := s.repo.GetVehicle(ctx, vehicleID)
	if err != nil {
		return Evaluation{}, err
	}
	owner, err := s.repo.GetUser(ctx, vehicle.OwnerID)
	if err != nil {
		return Evaluation{}, err
	}
	if !owner.Active {
		return Evaluation{}, domain.ErrUserInactive
	}

	latest, err := s.repo.LatestEventByVehicle(ctx, vehicleID)
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{
		Vehicle:         vehicle,
		SuggestedAction: domain.NextAction(latest),
	}
	if eval.SuggestedAction == domain.AccessTypeSalida && latest.SlotID != nil {
		slot, err := s.repo.GetSlot(ctx, *latest.SlotID)
		if err != nil {
			return Evaluation{}, err
		}
		eval.CandidateSlot = &slot
	}
	return eval, nil
}

type ConfirmInput struct {
	VehicleID  string
	Action     domain.AccessType
	SlotID     string
	OperatorID string
}

type ConfirmResult struct {
	Vehicle domain.Vehicle
	Event   domain.AccessEvent
	Pass    domain.Pass
	Slot    *domain.Slot
	// Renewed is set when the vehicle's previous pass had expired and a new
	// one was issued transparently as part of this entry.
	Renewed bool
}

// Confirm performs the scanned action as one transaction: resolve or issue
// the pass, append the access event, flip slot occupancy and write one
// notification per active staff member. The suggestion is re-derived inside
// the transaction; a mismatch with the requested action means another
// operator got there first and the caller must re-scan.
func (s *AccessService) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	if in.Action != domain.AccessTypeEntrada && in.Action != domain.AccessTypeSalida {
		return ConfirmResult{}, domain.ErrInvalidAction
	}

	now := s.clock.Now()
	var result ConfirmResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Row lock on the vehicle serializes concurrent confirms for it.
		vehicle, err := s.repo.GetVehicleForUpdate(txCtx, in.VehicleID)
		if err != nil {
			return err
		}
		owner, err := s.repo.GetUser(txCtx, vehicle.OwnerID)
		if err != nil {
			return err
		}
		if !owner.Active {
			return domain.ErrUserInactive
		}

		latest, err := s.repo.LatestEventByVehicle(txCtx, in.VehicleID)
		if err != nil {
			return err
		}
		if domain.NextAction(latest) != in.Action {
			return domain.ErrStaleSuggestion
		}

		switch in.Action {
		case domain.AccessTypeEntrada:
			result, err = s.confirmEntrada(txCtx, vehicle, owner, in, now)
		case domain.AccessTypeSalida:
			result, err = s.confirmSalida(txCtx, latest, in, now)
		}
		if err != nil {
			return err
		}
		result.Vehicle = vehicle

		return s.notifyStaff(txCtx, vehicle, result, now)
	})
	if err != nil {
		return ConfirmResult{}, err
	}

	s.publish(ctx, result)
	return result, nil
}

func (s *AccessService) confirmEntrada(ctx context.Context, vehicle domain.Vehicle, owner domain.User, in ConfirmInput, now time.Time) (ConfirmResult, error) {
	pass, renewed, err := s.passes.ResolveForEntry(ctx, vehicle, owner)
	if err != nil {
		return ConfirmResult{}, err
	}

	var slot *domain.Slot
	if vehicle.NeedsSlot() {
		if in.SlotID == "" {
			available, err := s.repo.CountSlotsByStatus(ctx, domain.SlotStatusDisponible)
			if err != nil {
				return ConfirmResult{}, err
			}
			if available > 0 {
				return ConfirmResult{}, domain.ErrSlotRequired
			}
			// Facility full for motorcycles: entry is still recorded,
			// just without a tracked slot.
		} else {
			chosen, err := s.repo.GetSlot(ctx, in.SlotID)
			if err != nil {
				return ConfirmResult{}, err
			}
			if chosen.Status != domain.SlotStatusDisponible {
				return ConfirmResult{}, domain.ErrSlotUnavailable
			}
			slot = &chosen
		}
	}

	event := domain.AccessEvent{
		ID:         newID(),
		PassID:     pass.ID,
		Type:       domain.AccessTypeEntrada,
		OperatorID: in.OperatorID,
		OccurredAt: now,
	}
	if slot != nil {
		id := slot.ID
		event.SlotID = &id
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return ConfirmResult{}, err
	}
	if slot != nil {
		// Conditional update: loses the race with another confirm
		// instead of silently overwriting occupancy.
		if err := s.repo.OccupySlot(ctx, slot.ID, event.ID); err != nil {
			return ConfirmResult{}, err
		}
		slot.Status = domain.SlotStatusOcupado
		slot.AccessEventID = &event.ID
	}

	return ConfirmResult{Event: event, Pass: pass, Slot: slot, Renewed: renewed}, nil
}

func (s *AccessService) confirmSalida(ctx context.Context, latest *domain.AccessEvent, in ConfirmInput, now time.Time) (ConfirmResult, error) {
	event := domain.AccessEvent{
		ID:         newID(),
		PassID:     latest.PassID,
		Type:       domain.AccessTypeSalida,
		OperatorID: in.OperatorID,
		SlotID:     latest.SlotID,
		OccurredAt: now,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return ConfirmResult{}, err
	}

	var slot *domain.Slot
	if latest.SlotID != nil {
		if err := s.repo.ReleaseSlot(ctx, *latest.SlotID); err != nil {
			return ConfirmResult{}, err
		}
		released, err := s.repo.GetSlot(ctx, *latest.SlotID)
		if err != nil {
			return ConfirmResult{}, err
		}
		slot = &released
	}

	return ConfirmResult{Event: event, Slot: slot}, nil
}

func (s *AccessService) notifyStaff(ctx context.Context, vehicle domain.Vehicle, res ConfirmResult, now time.Time) error {
	staff, err := s.repo.ListActiveStaff(ctx)
	if err != nil {
		return err
	}
	if len(staff) == 0 {
		return nil
	}

	title := "Entrada registrada"
	if res.Event.Type == domain.AccessTypeSalida {
		title = "Salida registrada"
	}
	body := accessDescription(vehicle, res)

	notifications := make([]domain.Notification, 0, len(staff))
	for _, member := range staff {
		notifications = append(notifications, domain.Notification{
			ID:          newID(),
			RecipientID: member.ID,
			Title:       title,
			Body:        body,
			Category:    domain.NotificationCategoryAcceso,
			EntityID:    &vehicle.ID,
			CreatedAt:   now,
		})
	}
	return s.repo.CreateNotifications(ctx, notifications)
}

func (s *AccessService) publish(ctx context.Context, res ConfirmResult) {
	if s.publisher == nil {
		return
	}
	event := fanout.Event{
		Type:        string(res.Event.Type),
		Plate:       res.Vehicle.Plate,
		Description: accessDescription(res.Vehicle, res),
		Timestamp:   res.Event.OccurredAt,
	}
	if res.Slot != nil {
		event.SlotLabel = res.Slot.Label
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("fanout publish failed: %v", err)
	}
}

func accessDescription(vehicle domain.Vehicle, res ConfirmResult) string {
	verb := "entró a"
	if res.Event.Type == domain.AccessTypeSalida {
		verb = "salió de"
	}
	desc := fmt.Sprintf("Vehículo %s %s la privada", vehicle.Plate, verb)
	if res.Slot != nil && res.Event.Type == domain.AccessTypeEntrada {
		desc += fmt.Sprintf(" (cajón %s)", res.Slot.Label)
	}
	if res.Renewed {
		desc += " con pase renovado"
	}
	return desc
}
