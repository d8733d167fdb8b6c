package executor

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/LironJit/gradle-dependency-lock-plugin/internal/plan"
)

// Node execution states for a parallel run.
const (
	statePending int32 = iota
	stateRunning
	stateDone
	stateFailed
)

// execNode wraps a scheduled task with the mutable counters a parallel run
// needs. The plan itself stays a read-only snapshot.
type execNode struct {
	task       *plan.Task
	dependents []*execNode

	depCount atomic.Int32
	state    atomic.Int32
	skipOnce sync.Once
	err      error
}

func (n *execNode) currentState() int32 {
	return n.state.Load()
}

// buildNodes materializes the execution DAG from the frozen plan.
func buildNodes(p *plan.Plan) []*execNode {
	byPath := make(map[string]*execNode, len(p.Tasks()))
	nodes := make([]*execNode, 0, len(p.Tasks()))
	for _, t := range p.Tasks() {
		n := &execNode{task: t}
		byPath[t.Path()] = n
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		for _, dep := range n.task.Deps {
			depNode := byPath[dep.Path()]
			depNode.dependents = append(depNode.dependents, n)
		}
		n.depCount.Store(int32(len(n.task.Deps)))
	}
	return nodes
}

// skipErr marks a node that never ran because an upstream task failed or the
// run was cancelled. Skip errors are symptoms, not causes.
func skipErr(reason string) error {
	return fmt.Errorf("skipped %s", reason)
}

func isSkipErr(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "skipped")
}
