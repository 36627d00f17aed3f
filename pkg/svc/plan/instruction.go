package plan

import "strings"

// Instruction is one upgrade directive for a single module. The type is a
// closed sum: the unexported method limits implementations to the variants
// defined in this file, one per instruction kind.
type Instruction interface {
	// Render spells the instruction in the canonical descriptor syntax.
	// Spellings are an external-compatibility contract with the tool that
	// consumes the descriptors and must not be changed.
	Render() string

	instruction()
}

// AddModule loads a module that is new in this version.
type AddModule struct {
	Name string
}

// RemoveModule unloads a module that no longer exists in this version.
type RemoveModule struct {
	Name string
}

// UpdateSupervisor upgrades a supervisor-like module. A supervisor role
// always takes this form, even when the module also exports a migration
// hook.
type UpdateSupervisor struct {
	Name string
}

// UpdateWithMigration upgrades a stateful module by running its exported
// state-migration hook, after the listed dependencies have been handled.
type UpdateWithMigration struct {
	Name string
	Deps []string
}

// ReloadCode swaps a purely functional module's code in place. This is the
// fallback when no structural role and no migration hook apply.
type ReloadCode struct {
	Name string
	Deps []string
}

func (i AddModule) instruction() {}
func (i RemoveModule) instruction() {}
func (i UpdateSupervisor) instruction() {}
func (i UpdateWithMigration) instruction() {}
func (i ReloadCode) instruction() {}

// Render implements Instruction.
func (i AddModule) Render() string {
	return "add_module_instruction(" + i.Name + ")"
}

// Render implements Instruction.
func (i RemoveModule) Render() string {
	return "remove_module_instruction(" + i.Name + ")"
}

// Render implements Instruction.
func (i UpdateSupervisor) Render() string {
	return "update_supervisor_instruction(" + i.Name + ")"
}

// Render implements Instruction.
func (i UpdateWithMigration) Render() string {
	return "update_with_migration_instruction(" + i.Name + ", " + renderDeps(i.Deps) + ")"
}

// Render implements Instruction.
func (i ReloadCode) Render() string {
	return "reload_code_instruction(" + i.Name + ", " + renderDeps(i.Deps) + ")"
}

// renderDeps spells a dependency list as [a, b, c].
func renderDeps(deps []string) string {
	return "[" + strings.Join(deps, ", ") + "]"
}
