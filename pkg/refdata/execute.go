package refdata

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ExecMode selects whether a plan is executed or merely previewed.
type ExecMode int

const (
	// DryRun reports every action without external side effects.
	DryRun ExecMode = iota
	// Execute applies actions against the object store.
	Execute
)

func (m ExecMode) String() string {
	if m == DryRun {
		return "dry-run"
	}
	return "execute"
}

// An ActionResult reports the outcome of one plan action. Copied is the total
// number of files transferred, set only for copy-group actions in Execute
// mode.
type ActionResult struct {
	Action Action
	Copied int
	Err    error
}

// A Driver applies reconciliation plans through an ObjectStore.
type Driver struct {
	store ObjectStore
	log   logrus.FieldLogger
}

func NewDriver(store ObjectStore, log logrus.FieldLogger) *Driver {
	return &Driver{store: store, log: log}
}

// Execute applies the plan's actions strictly in order. In DryRun mode each
// action is reported with no external side effect; the bucket name is still
// validated so configuration errors surface before anything runs. In Execute
// mode execution stops at the first failing action; completed actions are not
// rolled back (the storage side effects are not transactional) and the result
// sequence reports them alongside the failure, so the caller can retry later.
func (d *Driver) Execute(plan Plan, mode ExecMode) ([]ActionResult, error) {
	if err := plan.Identity.Validate(); err != nil {
		return nil, err
	}

	results := make([]ActionResult, 0, len(plan.Actions))
	for i, action := range plan.Actions {
		if mode == DryRun {
			d.log.Infof("[dry-run] would perform %s on %s", action, plan.Identity.Name)
			results = append(results, ActionResult{Action: action})
			continue
		}

		d.log.Infof("performing %s on %s (%d/%d)", action, plan.Identity.Name, i+1, len(plan.Actions))
		copied, err := d.apply(plan, action)
		results = append(results, ActionResult{Action: action, Copied: copied, Err: err})
		if err != nil {
			return results, &ActionError{Action: action, Err: err}
		}
	}
	return results, nil
}

func (d *Driver) apply(plan Plan, action Action) (int, error) {
	id := plan.Identity
	switch action.Kind {
	case ActionCreateBucket:
		return 0, d.store.CreateBucket(id)
	case ActionEnableAcceleration:
		return 0, d.store.SetTransferAcceleration(id, true)
	case ActionCopyGroup:
		return d.copyGroup(plan, action.Group)
	case ActionWriteMarker:
		return 0, d.store.WriteObject(id, MarkerKey, action.Marker)
	}
	return 0, fmt.Errorf("unknown action kind %d", action.Kind)
}

func (d *Driver) copyGroup(plan Plan, group GroupName) (int, error) {
	copied := 0
	for _, spec := range plan.Version.Sources[group] {
		sourceURI := fmt.Sprintf("s3://%s/%s", plan.Version.SourceBucket, spec.SourcePrefix)
		d.log.Debugf("copying %s -> %s", sourceURI, spec.DestPrefix)
		res, err := d.store.CopyTree(plan.Identity, sourceURI, spec.DestPrefix)
		copied += res.FilesCopied
		if err != nil {
			return copied, err
		}
	}
	d.log.Infof("group %s: %d files copied", group, copied)
	return copied, nil
}
