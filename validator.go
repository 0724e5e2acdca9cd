package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/graphkit-io/graphql/gqlerr"
)

// typeInfo tracks the current parent type, field definition and argument
// definition as the validator's walk descends, so rules can query "what type
// am I under right now" without re-resolving it from scratch at every node —
// grounded on the teacher's opContext/context pair in system/validation/validate.go,
// collapsed into one struct since this engine validates one document as a whole
// rather than per-operation-with-shared-fragment-caching.
type typeInfo struct {
	schema      *Schema
	parentType  NamedType
	fieldDef    *Field
	fragmentSet map[string]bool
}

// validator accumulates rule violations across one full-document walk.
type validator struct {
	schema *Schema
	doc    *Document
	errs   gqlerr.List
}

// Validate runs the ten required rules (spec.md §4.3) against doc and returns
// every violation found; an empty result means the document is safe to execute.
func Validate(schema *Schema, doc *Document) gqlerr.List {
	v := &validator{schema: schema, doc: doc}
	v.ruleExecutableDefinitions()
	v.ruleUniqueOperationNames()
	v.ruleLoneAnonymousOperation()
	v.ruleUniqueFragmentNames()
	v.ruleKnownFragmentNames()

	for _, op := range doc.Operations() {
		v.validateOperation(op)
	}
	return v.errs
}

func (v *validator) addErr(pos *ast.Position, rule, format string, args ...interface{}) {
	v.errs = append(v.errs, gqlerr.At(pos, rule, format, args...))
}

// ruleExecutableDefinitions — rule 1: every top-level definition parses as an
// operation or fragment. gqlparser's ParseQuery already rejects schema
// definitions appearing in an executable document, so this rule is satisfied
// structurally; it is kept as an explicit, named check so the rule list in
// spec.md §4.3 has a one-to-one code counterpart.
func (v *validator) ruleExecutableDefinitions() {
	for _, op := range v.doc.Operations() {
		if op.Operation != ast.Query && op.Operation != ast.Mutation && op.Operation != ast.Subscription {
			v.addErr(op.Position, "ExecutableDefinitions", "operation %q is not an executable definition", op.Name)
		}
	}
}

// ruleUniqueOperationNames — rule 2.
func (v *validator) ruleUniqueOperationNames() {
	seen := make(map[string]*ast.Position)
	for _, op := range v.doc.Operations() {
		if op.Name == "" {
			continue
		}
		if _, ok := seen[op.Name]; ok {
			v.addErr(op.Position, "UniqueOperationNames", "there can be only one operation named %q", op.Name)
			continue
		}
		seen[op.Name] = op.Position
	}
}

// ruleLoneAnonymousOperation — rule 3.
func (v *validator) ruleLoneAnonymousOperation() {
	ops := v.doc.Operations()
	if len(ops) <= 1 {
		return
	}
	for _, op := range ops {
		if op.Name == "" {
			v.addErr(op.Position, "LoneAnonymousOperation", "this anonymous operation must be the only defined operation")
		}
	}
}

// ruleUniqueFragmentNames — rule 8.
func (v *validator) ruleUniqueFragmentNames() {
	seen := make(map[string]*ast.Position)
	for _, f := range v.doc.Fragments() {
		if _, ok := seen[f.Name]; ok {
			v.addErr(f.Position, "UniqueFragmentNames", "there can be only one fragment named %q", f.Name)
			continue
		}
		seen[f.Name] = f.Position
	}
}

// ruleKnownFragmentNames — rule 9, checked across every spread in the document
// regardless of which operation reaches it.
func (v *validator) ruleKnownFragmentNames() {
	var walk func(set ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *ast.Field:
				walk(s.SelectionSet)
			case *ast.InlineFragment:
				walk(s.SelectionSet)
			case *ast.FragmentSpread:
				if v.doc.FragmentByName(s.Name) == nil {
					v.addErr(s.Position, "KnownFragmentNames", "unknown fragment %q", s.Name)
				}
			}
		}
	}
	for _, op := range v.doc.Operations() {
		walk(op.SelectionSet)
	}
	for _, f := range v.doc.Fragments() {
		walk(f.SelectionSet)
	}
}

// validateOperation runs the remaining rules, which need the operation's root
// type and variable scope: rules 4-7, 10.
func (v *validator) validateOperation(op *ast.OperationDefinition) {
	root := v.schema.RootFor(op.Operation)
	if root == nil {
		v.addErr(op.Position, "KnownTypeNames", "schema does not define a root type for %s operations", op.Operation)
		return
	}
	if op.Operation == ast.Subscription && len(op.SelectionSet) != 1 {
		v.addErr(op.Position, "SingleFieldSubscriptions", "subscription operations must select exactly one top-level field")
	}

	for _, def := range op.VariableDefinitions {
		v.ruleVariablesAreInputTypes(def)
	}

	ti := &typeInfo{schema: v.schema, parentType: root, fragmentSet: map[string]bool{}}
	v.validateSelectionSet(op.SelectionSet, ti)
}

// ruleVariablesAreInputTypes — rule 6.
func (v *validator) ruleVariablesAreInputTypes(def *ast.VariableDefinition) {
	t := resolveASTType(v.schema, def.Type)
	if t == nil {
		v.addErr(def.Position, "KnownTypeNames", "unknown type %q", def.Type.Name())
		return
	}
	if !IsInputType(t) {
		v.addErr(def.Position, "VariablesAreInputTypes", "variable $%s cannot be of non-input type %q", def.Variable, def.Type.String())
	}
}

// validateSelectionSet drives rules 4, 5, 7 and 10 over one selection set and
// recurses into fragments/sub-selections, carrying fresh fragment-cycle state
// per spread chain (spec.md §4.5.3's cycle-safety, reused here for validation).
func (v *validator) validateSelectionSet(set ast.SelectionSet, ti *typeInfo) {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			v.validateField(s, ti)
		case *ast.FragmentSpread:
			v.validateFragmentSpread(s, ti)
		case *ast.InlineFragment:
			v.validateInlineFragment(s, ti)
		}
	}
}

func (v *validator) validateField(f *ast.Field, ti *typeInfo) {
	if f.Name == "__typename" {
		return
	}
	fields := fieldsOf(ti.parentType)
	field, ok := fields[f.Name]
	if !ok {
		v.addErr(f.Position, "FieldsOnCorrectType", "field %q does not exist on type %q", f.Name, ti.parentType.TypeName())
		return
	}

	named := NamedTypeOf(field.Type)
	if named == nil {
		v.addErr(f.Position, "KnownTypeNames", "field %q has an unresolvable type", f.Name)
		return
	}

	// rule 7: scalar leafs / composite must select.
	hasSelection := len(f.SelectionSet) > 0
	if IsLeafType(named) && hasSelection {
		v.addErr(f.Position, "ScalarLeafs", "field %q of scalar/enum type %q must not have a sub-selection", f.Name, named.TypeName())
	}
	if IsCompositeType(named) && !hasSelection {
		v.addErr(f.Position, "ScalarLeafs", "field %q of composite type %q must have a sub-selection", f.Name, named.TypeName())
	}

	if hasSelection && IsCompositeType(named) {
		child := &typeInfo{schema: v.schema, parentType: named, fieldDef: field, fragmentSet: ti.fragmentSet}
		v.validateSelectionSet(f.SelectionSet, child)
	}
}

func (v *validator) validateFragmentSpread(s *ast.FragmentSpread, ti *typeInfo) {
	frag := v.doc.FragmentByName(s.Name)
	if frag == nil {
		return // already reported by ruleKnownFragmentNames
	}
	if ti.fragmentSet[s.Name] {
		return
	}
	ti.fragmentSet[s.Name] = true
	defer delete(ti.fragmentSet, s.Name)

	target := v.schema.NamedType(frag.TypeCondition)
	if target == nil {
		v.addErr(frag.Position, "KnownTypeNames", "unknown type %q in fragment %q", frag.TypeCondition, frag.Name)
		return
	}
	v.ruleFragmentsOnCompositeTypes(frag.Position, target, frag.Name)

	child := &typeInfo{schema: v.schema, parentType: target, fragmentSet: ti.fragmentSet}
	v.validateSelectionSet(frag.SelectionSet, child)
}

func (v *validator) validateInlineFragment(s *ast.InlineFragment, ti *typeInfo) {
	target := ti.parentType
	if s.TypeCondition != "" {
		target = v.schema.NamedType(s.TypeCondition)
		if target == nil {
			v.addErr(s.Position, "KnownTypeNames", "unknown type %q in inline fragment", s.TypeCondition)
			return
		}
		v.ruleFragmentsOnCompositeTypes(s.Position, target, "")
	}
	child := &typeInfo{schema: v.schema, parentType: target, fragmentSet: ti.fragmentSet}
	v.validateSelectionSet(s.SelectionSet, child)
}

// ruleFragmentsOnCompositeTypes — rule 5.
func (v *validator) ruleFragmentsOnCompositeTypes(pos *ast.Position, target NamedType, fragName string) {
	if IsCompositeType(target) {
		return
	}
	if fragName != "" {
		v.addErr(pos, "FragmentsOnCompositeTypes", "fragment %q cannot condition on non-composite type %q", fragName, target.TypeName())
	} else {
		v.addErr(pos, "FragmentsOnCompositeTypes", "inline fragment cannot condition on non-composite type %q", target.TypeName())
	}
}
