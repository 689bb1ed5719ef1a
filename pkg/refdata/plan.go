package refdata

import "fmt"

// ActionKind enumerates the corrective actions a plan can contain.
type ActionKind int

const (
	ActionCreateBucket ActionKind = iota
	ActionEnableAcceleration
	ActionCopyGroup
	ActionWriteMarker
)

// An Action is one step of a reconciliation plan. Group is set only for
// ActionCopyGroup, Marker only for ActionWriteMarker.
type Action struct {
	Kind   ActionKind
	Group  GroupName
	Marker string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCreateBucket:
		return "create-bucket"
	case ActionEnableAcceleration:
		return "enable-acceleration"
	case ActionCopyGroup:
		return fmt.Sprintf("copy-group[%s]", a.Group)
	case ActionWriteMarker:
		return fmt.Sprintf("write-marker[%s]", a.Marker)
	}
	return "unknown-action"
}

// A Plan is an ordered action sequence. It is produced once per
// reconciliation call and consumed exactly once by the driver.
type Plan struct {
	Identity BucketIdentity
	Version  ReferenceVersion
	Actions  []Action
}

// A Verdict is the outcome of verify-only reconciliation. Reasons are listed
// in a fixed check order: existence, then missing groups in catalog-declared
// order, then the marker. Read-only after creation.
type Verdict struct {
	Match   bool
	Reasons []string
}

// CloneOptions carries the caller-requested knobs that shape a clone plan.
type CloneOptions struct {
	// Enable transfer acceleration on the new bucket before copying.
	Acceleration bool
}

// PlanClone computes the action sequence that populates a fresh bucket with
// the given version, minus excluded groups. The marker write is always the
// last action so a bucket never shows a matching marker while a data copy is
// incomplete. Same inputs always yield the same sequence.
func PlanClone(id BucketIdentity, version ReferenceVersion, exclusions ExclusionSet, opts CloneOptions) Plan {
	actions := []Action{{Kind: ActionCreateBucket}}
	if opts.Acceleration {
		actions = append(actions, Action{Kind: ActionEnableAcceleration})
	}
	for _, g := range version.IncludedGroups(exclusions) {
		actions = append(actions, Action{Kind: ActionCopyGroup, Group: g})
	}
	actions = append(actions, Action{Kind: ActionWriteMarker, Marker: version.MarkerContent})
	return Plan{Identity: id, Version: version, Actions: actions}
}

// PlanVerify compares an observed snapshot against the expected layout for
// the given version. Every detected discrepancy is reported, not just the
// first.
func PlanVerify(snapshot BucketSnapshot, version ReferenceVersion, exclusions ExclusionSet) Verdict {
	if !snapshot.Exists {
		return Verdict{Reasons: []string{"bucket does not exist"}}
	}

	folders := make(map[string]bool, len(snapshot.TopLevelFolders))
	for _, f := range snapshot.TopLevelFolders {
		folders[f] = true
	}

	var reasons []string
	for _, g := range version.IncludedGroups(exclusions) {
		if !folders[string(g)] {
			reasons = append(reasons, fmt.Sprintf("missing group: %s", g))
		}
	}

	if snapshot.MarkerValue == nil {
		reasons = append(reasons, fmt.Sprintf(
			"version marker mismatch: expected %s, found absent", version.MarkerContent))
	} else if *snapshot.MarkerValue != version.MarkerContent {
		reasons = append(reasons, fmt.Sprintf(
			"version marker mismatch: expected %s, found %s", version.MarkerContent, *snapshot.MarkerValue))
	}

	return Verdict{Match: len(reasons) == 0, Reasons: reasons}
}

// PlanEnsure composes verification and cloning. A matching bucket yields its
// Verdict and no actions; a missing bucket yields the same Plan PlanClone
// would produce; any other mismatch is a ConflictError. A bucket holding a
// different but otherwise valid version surfaces as a marker mismatch and
// therefore a conflict: version upgrades and downgrades are never applied
// automatically.
func PlanEnsure(id BucketIdentity, snapshot BucketSnapshot, version ReferenceVersion, exclusions ExclusionSet, opts CloneOptions) (*Plan, *Verdict, error) {
	verdict := PlanVerify(snapshot, version, exclusions)
	if verdict.Match {
		return nil, &verdict, nil
	}
	if !snapshot.Exists {
		plan := PlanClone(id, version, exclusions, opts)
		return &plan, nil, nil
	}
	return nil, nil, &ConflictError{Bucket: id.Name, Reasons: verdict.Reasons}
}
