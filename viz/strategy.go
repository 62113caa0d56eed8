package viz

// ShouldOrchestrate decides whether the multi-entity orchestrator or the
// single-entity legacy renderer should own a step.
//
// Rules, in order:
//  1. No entities: false, there is nothing to orchestrate.
//  2. More than one distinct entity type: true.
//  3. One type but more than one instance of it: true.
//  4. Otherwise: false.
//
// Override: any linkedlist entity forces true regardless of count.
// Linked-list rendering needs the orchestrator's incompleteness handling
// even for a single instance; this policy exception is deliberate.
func ShouldOrchestrate(step *UIRStep) bool {
	if step == nil || len(step.Entities) == 0 {
		return false
	}
	for _, e := range step.Entities {
		if e.Type == EntityLinkedList {
			return true
		}
	}
	if len(step.EntityTypes()) > 1 {
		return true
	}
	return len(step.Entities) > 1
}
