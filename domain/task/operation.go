package task

import "strings"

// Operation represents the type of tracked operation.
type Operation string

// Operation values.
const (
	OperationRoot  Operation = "csvsplit"
	OperationSplit Operation = "csvsplit.split"
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// IsSplitOperation returns true if this is a split operation.
func (o Operation) IsSplitOperation() bool {
	return o == OperationSplit || strings.HasPrefix(string(o), "csvsplit.split.")
}
