package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
)

// PropertyService manages the property registry.
type PropertyService struct {
	store ledger.PropertyStore
	deps
}

func NewPropertyService(store ledger.PropertyStore, opts ...Option) *PropertyService {
	return &PropertyService{store: store, deps: newDeps(opts)}
}

// AddProperty registers a property with no units.
func (s *PropertyService) AddProperty(ctx context.Context, name, location string) (core.Property, error) {
	p := core.Property{
		ID:       s.newID(),
		Name:     strings.TrimSpace(name),
		Location: strings.TrimSpace(location),
	}
	if err := p.Validate(); err != nil {
		return core.Property{}, err
	}
	if err := s.store.AddProperty(ctx, p); err != nil {
		return core.Property{}, fmt.Errorf("add property: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Property added", "id", p.ID, "name", p.Name)
	return p, nil
}

// AddUnit appends a vacant unit to a property. rent is user input and must be
// a positive whole number.
func (s *PropertyService) AddUnit(ctx context.Context, propertyID, name, rent string) (core.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Unit{}, core.ErrEmptyName
	}
	amount, err := core.ParseMoney(rent)
	if err != nil {
		return core.Unit{}, err
	}
	u := core.Unit{ID: s.newID(), Name: name, Rent: amount, Status: core.UnitVacant}
	if err := s.store.AddUnit(ctx, propertyID, u); err != nil {
		return core.Unit{}, fmt.Errorf("add unit: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Unit added", "property_id", propertyID, "unit_id", u.ID, "name", u.Name)
	return u, nil
}

// AddTenant places a tenant in a vacant unit.
func (s *PropertyService) AddTenant(ctx context.Context, unitID, name, phone string) (core.Unit, error) {
	t := core.Tenant{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)}
	if err := t.Validate(); err != nil {
		return core.Unit{}, err
	}
	if strings.TrimSpace(unitID) == "" {
		return core.Unit{}, core.ErrEmptyID
	}
	u, err := s.store.AssignTenant(ctx, unitID, t)
	if err != nil {
		return core.Unit{}, fmt.Errorf("assign tenant: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Tenant added", "unit_id", unitID, "tenant", t.Name)
	return u, nil
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]core.Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *PropertyService) GetProperty(ctx context.Context, id string) (core.Property, error) {
	return s.store.GetProperty(ctx, id)
}
