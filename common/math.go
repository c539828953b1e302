package common

const (
	// ErrNegativeOperand is thrown by checked arithmetic when any operand
	// is below zero. All marketplace accounting is over non-negative values.
	ErrNegativeOperand = "negative operand in checked arithmetic"
	// ErrUnderflow is thrown by Sub when the result would drop below zero.
	ErrUnderflow = "arithmetic underflow"
	// ErrZeroDivision is thrown by Div on a zero divisor.
	ErrZeroDivision = "division by zero"
)

// Checked arithmetic over non-negative integers. Any violation aborts the
// whole call. Overflow beyond the VM 256-bit integer limit faults on the VM
// level, so only sign and divisor checks live here.

// Add returns a+b, panicking if either operand is negative.
func Add(a, b int) int {
	requireNonNegative(a, b)
	return a + b
}

// Sub returns a-b, panicking on a negative operand or a negative result.
func Sub(a, b int) int {
	requireNonNegative(a, b)
	if b > a {
		panic(ErrUnderflow)
	}
	return a - b
}

// Mul returns a*b, panicking if either operand is negative.
func Mul(a, b int) int {
	requireNonNegative(a, b)
	return a * b
}

// Div returns a/b (truncated), panicking on a negative operand or zero b.
func Div(a, b int) int {
	requireNonNegative(a, b)
	if b == 0 {
		panic(ErrZeroDivision)
	}
	return a / b
}

func requireNonNegative(a, b int) {
	if a < 0 || b < 0 {
		panic(ErrNegativeOperand)
	}
}
