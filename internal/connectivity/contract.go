package connectivity

import "fmt"

// ContractError reports a query the caller should never make, such as end 1
// of the first node. It is raised as a panic in normal builds; builds tagged
// release skip the panic and the query resolves to a zero Resolution.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("connectivity: %s: %s", e.Op, e.Msg)
}

func violate(op, format string, args ...any) {
	if strictContracts {
		panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
	}
}
