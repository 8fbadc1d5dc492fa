package policy

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
	"github.com/futig/architech-backend/internal/entity"
)

// Phase machine states. Untyped so they convert to statekit.StateID.
const (
	stateAwaitingFirstTurns = "awaiting_first_turns"
	stateEvaluating         = "evaluating"
	stateConcluded          = "concluded"
)

const (
	eventEvaluate = "evaluate"
	eventDecide   = "decide"
)

func init() {
	stateMap := map[string]entity.InterviewPhase{
		stateAwaitingFirstTurns: entity.PhaseAwaitingFirstTurns,
		stateEvaluating:         entity.PhaseEvaluating,
		stateConcluded:          entity.PhaseConcluded,
	}

	for fsmState, phase := range stateMap {
		if fsmState != string(phase) {
			panic(fmt.Sprintf("phase state %q does not match InterviewPhase %q", fsmState, phase))
		}
	}
}

type phaseContext struct {
	TurnCount int
	Decision  entity.PolicyDecision
}

// ResolvePhase places an evaluated turn in the interview state machine:
// awaiting_first_turns until MinTurns are done, evaluating afterwards,
// concluded once a decision stops the interview. Concluded has no
// outgoing transitions.
func ResolvePhase(turnCount int, decision entity.PolicyDecision) (entity.InterviewPhase, error) {
	builder := statekit.NewMachine[phaseContext]("interview-phase").
		WithInitial(statekit.StateID(stateAwaitingFirstTurns)).
		WithContext(phaseContext{
			TurnCount: turnCount,
			Decision:  decision,
		}).
		WithGuard("floorReached", func(ctx phaseContext, e statekit.Event) bool {
			return ctx.TurnCount >= MinTurns
		}).
		WithGuard("decisionConcludes", func(ctx phaseContext, e statekit.Event) bool {
			return !ctx.Decision.ShouldContinue
		})

	builder.State(stateAwaitingFirstTurns).
		On(eventEvaluate).Target(stateEvaluating).Guard("floorReached").
		Done()

	builder.State(stateEvaluating).
		On(eventDecide).Target(stateConcluded).Guard("decisionConcludes").
		Done()

	builder.State(stateConcluded).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build phase machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	interpreter.Send(statekit.Event{Type: statekit.EventType(eventEvaluate)})
	interpreter.Send(statekit.Event{Type: statekit.EventType(eventDecide)})

	return entity.InterviewPhase(interpreter.State().Value), nil
}
