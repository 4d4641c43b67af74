package commands

import (
	"errors"

	"mestrack/internal/core/domain/model/actor"
	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/guard"
)

var (
	ErrResolveDefectCommandIsNotConstructed = errors.New(
		"ResolveDefectCommand must be created via NewResolveDefectCommand constructor",
	)
	ErrReturnOperationIsRequired = errors.New("return operation is required for a repair resolution")
)

// ResolveDefectCommand represents the assigned repairer closing a defect:
// either the unit was repaired and rejoins the process at a named operation,
// or it is scrapped for good.
//
// Example:
//
//	cmd, err := NewResolveDefectRepairCommand(defectID, repairerID, actor.RoleRepairer,
//	    returnOpID, "reflowed U4, joints verified")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewResolveDefectCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("resolution failed: %w", err)
//	}
type ResolveDefectCommand struct { //nolint:recvcheck //using for validation
	defectID            kernel.UUID
	resolverID          kernel.UUID
	resolverRole        actor.Role
	scrap               bool
	returnToOperationID kernel.UUID
	notes               string

	guard guard.ConstructorGuard
}

// NewResolveDefectRepairCommand creates a command resolving a defect as
// repaired, returning the unit to the process at returnToOperationID.
func NewResolveDefectRepairCommand(
	defectID, resolverID kernel.UUID,
	resolverRole actor.Role,
	returnToOperationID kernel.UUID,
	notes string,
) (ResolveDefectCommand, error) {
	resolveCommand := ResolveDefectCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		resolveCommand.setDefectID(defectID),
		resolveCommand.setResolver(resolverID, resolverRole),
		resolveCommand.setReturnToOperationID(returnToOperationID),
	); err != nil {
		return ResolveDefectCommand{}, err
	}

	return resolveCommand, nil
}

// NewResolveDefectScrapCommand creates a command resolving a defect by
// scrapping the unit.
func NewResolveDefectScrapCommand(
	defectID, resolverID kernel.UUID,
	resolverRole actor.Role,
	notes string,
) (ResolveDefectCommand, error) {
	resolveCommand := ResolveDefectCommand{
		scrap: true,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		resolveCommand.setDefectID(defectID),
		resolveCommand.setResolver(resolverID, resolverRole),
	); err != nil {
		return ResolveDefectCommand{}, err
	}

	return resolveCommand, nil
}

// Validate ensures the command was created through a constructor.
func (c ResolveDefectCommand) Validate() error {
	return c.guard.Validate(ErrResolveDefectCommandIsNotConstructed)
}

// DefectID returns the defect being resolved.
func (c ResolveDefectCommand) DefectID() kernel.UUID {
	return c.defectID
}

// ResolverID returns the resolving repairer.
func (c ResolveDefectCommand) ResolverID() kernel.UUID {
	return c.resolverID
}

// ResolverRole returns the resolving repairer's role.
func (c ResolveDefectCommand) ResolverRole() actor.Role {
	return c.resolverRole
}

// Scrap reports whether the unit is scrapped rather than repaired.
func (c ResolveDefectCommand) Scrap() bool {
	return c.scrap
}

// ReturnToOperationID returns the operation where the repaired unit rejoins
// the process. Only meaningful for repair resolutions.
func (c ResolveDefectCommand) ReturnToOperationID() kernel.UUID {
	return c.returnToOperationID
}

// Notes returns the repair or scrap notes.
func (c ResolveDefectCommand) Notes() string {
	return c.notes
}

func (c *ResolveDefectCommand) setDefectID(defectID kernel.UUID) error {
	if err := defectID.Validate(); err != nil {
		return err
	}

	c.defectID = defectID
	return nil
}

func (c *ResolveDefectCommand) setResolver(resolverID kernel.UUID, resolverRole actor.Role) error {
	if err := errors.Join(resolverID.Validate(), resolverRole.Validate()); err != nil {
		return err
	}

	c.resolverID = resolverID
	c.resolverRole = resolverRole
	return nil
}

func (c *ResolveDefectCommand) setReturnToOperationID(returnToOperationID kernel.UUID) error {
	if err := returnToOperationID.Validate(); err != nil {
		return ErrReturnOperationIsRequired
	}

	c.returnToOperationID = returnToOperationID
	return nil
}
