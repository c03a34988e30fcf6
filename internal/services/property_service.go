package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/buena/portfolio-service/internal/constants"
	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/models"
	"github.com/buena/portfolio-service/internal/repositories"
	"github.com/buena/portfolio-service/internal/utils"
)

/*
PropertyService coordinates the multi-step property transactions. Every
create/update/delete runs as one pgx transaction; repositories are bound to
the open transaction so either the whole graph lands or none of it does.
*/
type PropertyService struct {
	db    repositories.DB
	email *EmailService
}

func NewPropertyService(db repositories.DB, email *EmailService) *PropertyService {
	return &PropertyService{db: db, email: email}
}

/*
Create persists a property with its buildings and units atomically:

 1. validate temp-id uniqueness and referential closure (before any write)
 2. pull the next property number off the sequence
 3. insert the property (status defaults to ACTIVE)
 4. insert buildings, capturing temp-id → server-id
 5. verify that explicitly referenced buildings belong to this property
 6. resolve unit building references and bulk-insert units
 7. commit; then emit the fire-and-forget notification

Any failure between 2 and 6 rolls the whole transaction back.
*/
func (s *PropertyService) Create(ctx context.Context, req dtos.CreatePropertyRequest) (resp *dtos.PropertyResponse, err error) {
	if err := ValidateBuildingRefs(req.Buildings, req.Units); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, txFailed("begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	propRepo := repositories.NewPropertyRepository(tx)
	bldgRepo := repositories.NewBuildingRepository(tx)
	unitRepo := repositories.NewUnitRepository(tx)

	seq, err := propRepo.NextPropertyNumber(ctx)
	if err != nil {
		return nil, txFailed("property number sequence", err)
	}

	status := models.PropertyStatusActive
	if req.GeneralInfo.Status != "" {
		status = models.PropertyStatus(req.GeneralInfo.Status)
	}
	prop := &models.Property{
		ID:             uuid.New(),
		Name:           req.GeneralInfo.Name,
		PropertyNumber: FormatPropertyNumber(seq),
		ManagementType: models.ManagementType(req.GeneralInfo.ManagementType),
		ManagerID:      req.GeneralInfo.ManagerID,
		AccountantID:   req.GeneralInfo.AccountantID,
		Status:         status,
	}
	if err := propRepo.Create(ctx, prop); err != nil {
		return nil, txFailed("insert property", err)
	}

	tempToReal := make(map[string]uuid.UUID, len(req.Buildings))
	buildings := make([]*models.Building, 0, len(req.Buildings))
	for _, b := range req.Buildings {
		bldg := &models.Building{
			ID:          uuid.New(),
			PropertyID:  prop.ID,
			Street:      b.Street,
			HouseNumber: b.HouseNumber,
			ZipMode:     b.ZipMode,
			City:        b.City,
		}
		if err := bldgRepo.Create(ctx, bldg); err != nil {
			return nil, txFailed("insert building", err)
		}
		tempToReal[b.TempID] = bldg.ID
		buildings = append(buildings, bldg)
	}

	if err := verifyBuildingOwnership(ctx, bldgRepo, prop.ID, req.Units); err != nil {
		return nil, err
	}

	resolved, err := ResolveUnits(prop.ID, tempToReal, req.Units)
	if err != nil {
		// Should be impossible after ValidateBuildingRefs; abort rather than
		// persist a dangling reference.
		return nil, txFailed("resolve unit references", err)
	}
	if err := unitRepo.CreateMany(ctx, resolved); err != nil {
		return nil, txFailed("insert units", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, txFailed("commit", err)
	}
	committed = true

	utils.Logger.Infof("Created property %s (%s) with %d building(s), %d unit(s)",
		prop.PropertyNumber, prop.ID, len(buildings), len(resolved))

	if s.email != nil {
		go s.email.SendPropertyCreated(prop, len(buildings), len(resolved))
	}

	units := make([]*models.Unit, len(resolved))
	for i := range resolved {
		units[i] = &resolved[i]
	}
	return &dtos.PropertyResponse{Property: *prop, Buildings: buildings, Units: units}, nil
}

/*
Update patches a property and its children in one transaction. GeneralInfo is
optional; when absent the property fields stay as they are (the row's
updated_at still moves, which keeps a DRAFT alive). Buildings and units that
carry a server id are updated in place. Submitted buildings without an id are
created; submitted units without an id are created too, resolving their
building reference through the same temp-id reconciliation as the create path,
or through an explicit building_id that must belong to this property. The full
graph is re-fetched after commit.
*/
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePropertyRequest) (*dtos.PropertyResponse, error) {
	var newBuildings []dtos.BuildingInput
	for _, b := range req.Buildings {
		if b.ID == nil {
			newBuildings = append(newBuildings, b)
		}
	}
	if err := ValidateBuildingRefs(newBuildings, req.Units); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, txFailed("begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	propRepo := repositories.NewPropertyRepository(tx)
	bldgRepo := repositories.NewBuildingRepository(tx)
	unitRepo := repositories.NewUnitRepository(tx)

	prop, err := propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, txFailed("load property", err)
	}
	if prop == nil {
		return nil, notFound(id)
	}

	if req.GeneralInfo != nil {
		prop.Name = req.GeneralInfo.Name
		prop.ManagementType = models.ManagementType(req.GeneralInfo.ManagementType)
		prop.ManagerID = req.GeneralInfo.ManagerID
		prop.AccountantID = req.GeneralInfo.AccountantID
		if req.GeneralInfo.Status != "" {
			prop.Status = models.PropertyStatus(req.GeneralInfo.Status)
		}
	}
	if err := propRepo.Update(ctx, prop); err != nil {
		return nil, txFailed("update property", err)
	}

	tempToReal := make(map[string]uuid.UUID)
	for _, b := range req.Buildings {
		if b.ID != nil {
			existing := &models.Building{
				ID:          *b.ID,
				PropertyID:  prop.ID,
				Street:      b.Street,
				HouseNumber: b.HouseNumber,
				ZipMode:     b.ZipMode,
				City:        b.City,
			}
			if err := bldgRepo.Update(ctx, existing); err != nil {
				return nil, txFailed("update building", err)
			}
			continue
		}
		bldg := &models.Building{
			ID:          uuid.New(),
			PropertyID:  prop.ID,
			Street:      b.Street,
			HouseNumber: b.HouseNumber,
			ZipMode:     b.ZipMode,
			City:        b.City,
		}
		if err := bldgRepo.Create(ctx, bldg); err != nil {
			return nil, txFailed("insert building", err)
		}
		tempToReal[b.TempID] = bldg.ID
	}

	var newUnits []dtos.UnitInput
	for _, u := range req.Units {
		if u.ID == nil {
			newUnits = append(newUnits, u)
			continue
		}
		existing, err := unitRepo.GetByID(ctx, *u.ID)
		if err != nil {
			return nil, txFailed("load unit", err)
		}
		if existing == nil {
			continue
		}
		existing.Number = nil
		if u.Number != "" {
			existing.Number = utils.Ptr(u.Number)
		}
		existing.Type = nil
		if u.Type != "" {
			existing.Type = utils.Ptr(models.UnitType(u.Type))
		}
		existing.Floor = u.Floor
		existing.Entrance = u.Entrance
		existing.Size = u.Size
		existing.CoOwnershipShare = u.CoOwnershipShare
		existing.Rooms = u.Rooms
		if err := unitRepo.Update(ctx, existing); err != nil {
			return nil, txFailed("update unit", err)
		}
	}

	if err := verifyBuildingOwnership(ctx, bldgRepo, prop.ID, req.Units); err != nil {
		return nil, err
	}

	resolved, err := ResolveUnits(prop.ID, tempToReal, newUnits)
	if err != nil {
		return nil, txFailed("resolve unit references", err)
	}
	if err := unitRepo.CreateMany(ctx, resolved); err != nil {
		return nil, txFailed("insert units", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, txFailed("commit", err)
	}
	committed = true

	return s.Get(ctx, id)
}

// Get returns the full persisted graph for one property.
func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*dtos.PropertyResponse, error) {
	prop, err := repositories.NewPropertyRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, txFailed("load property", err)
	}
	if prop == nil {
		return nil, notFound(id)
	}

	buildings, err := repositories.NewBuildingRepository(s.db).ListByPropertyID(ctx, id)
	if err != nil {
		return nil, txFailed("load buildings", err)
	}
	units, err := repositories.NewUnitRepository(s.db).ListByPropertyID(ctx, id)
	if err != nil {
		return nil, txFailed("load units", err)
	}

	if buildings == nil {
		buildings = []*models.Building{}
	}
	if units == nil {
		units = []*models.Unit{}
	}
	return &dtos.PropertyResponse{Property: *prop, Buildings: buildings, Units: units}, nil
}

// List returns all properties with their nested graphs, newest first.
func (s *PropertyService) List(ctx context.Context) ([]*dtos.PropertyResponse, error) {
	props, err := repositories.NewPropertyRepository(s.db).ListAll(ctx)
	if err != nil {
		return nil, txFailed("list properties", err)
	}

	out := make([]*dtos.PropertyResponse, 0, len(props))
	for _, p := range props {
		resp, err := s.Get(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Delete removes a property and cascades to its buildings, units and
// documents inside one transaction.
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return txFailed("begin", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := repositories.NewUnitRepository(tx).DeleteByPropertyID(ctx, id); err != nil {
		return txFailed("delete units", err)
	}
	if err := repositories.NewBuildingRepository(tx).DeleteByPropertyID(ctx, id); err != nil {
		return txFailed("delete buildings", err)
	}
	if err := repositories.NewDocumentRepository(tx).DeleteByPropertyID(ctx, id); err != nil {
		return txFailed("delete documents", err)
	}
	if err := repositories.NewPropertyRepository(tx).Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(id)
		}
		return txFailed("delete property", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return txFailed("commit", err)
	}
	committed = true

	utils.Logger.Infof("Deleted property %s with all child records", id)
	return nil
}

// PurgeStaleDrafts deletes DRAFT properties untouched for the retention
// window. Called by the daily maintenance cron.
func (s *PropertyService) PurgeStaleDrafts(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-constants.DraftRetention)
	drafts, err := repositories.NewPropertyRepository(s.db).ListStaleDrafts(ctx, cutoff)
	if err != nil {
		return 0, txFailed("list stale drafts", err)
	}

	purged := 0
	for _, d := range drafts {
		if err := s.Delete(ctx, d.ID); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to purge stale draft %s", d.ID)
			continue
		}
		purged++
	}
	if purged > 0 {
		utils.Logger.Infof("Purged %d stale draft propert(ies)", purged)
	}
	return purged, nil
}

/*
verifyBuildingOwnership checks that every new unit carrying an explicit
building_id points at a building that exists AND belongs to the property.
ValidateBuildingRefs cannot do this: it only sees the request, while a foreign
building_id is valid in isolation but would persist a unit under another
property's building. Runs inside the open transaction so the reads see
buildings created earlier in the same request.
*/
func verifyBuildingOwnership(ctx context.Context, repo repositories.BuildingRepository, propID uuid.UUID, units []dtos.UnitInput) error {
	for _, u := range units {
		if u.ID != nil || u.BuildingID == nil {
			continue
		}
		b, err := repo.GetByID(ctx, *u.BuildingID)
		if err != nil {
			return txFailed("load referenced building", err)
		}
		if b == nil || b.PropertyID != propID {
			return &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeUnknownBuildingRef,
				Message:    fmt.Sprintf("Unit references building %s which does not belong to this property", *u.BuildingID),
				Err:        utils.ErrUnknownBuildingRef,
			}
		}
	}
	return nil
}

func txFailed(step string, err error) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       utils.ErrCodeTransactionFailed,
		Message:    fmt.Sprintf("Transaction failed: %s", step),
		Err:        err,
	}
}

func notFound(id uuid.UUID) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    fmt.Sprintf("Property %s not found", id),
		Err:        utils.ErrPropertyNotFound,
	}
}
