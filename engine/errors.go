package engine

import "fmt"

// ErrorCode identifies a specific reason a script failed to evaluate. The
// set is closed: every failure the engine can produce maps to exactly one
// of these codes, mirroring the closed exception hierarchy a script
// interpreter needs for callers (mempool policy, block validation) to make
// programmatic decisions rather than pattern-match error strings.
type ErrorCode int

const (
	ErrScriptTooLarge ErrorCode = iota
	ErrTooManyOps
	ErrInvalidStackOperation
	ErrMinimalEncoding
	ErrInvalidPushSize
	ErrImpossibleEncoding
	ErrInvalidNumber
	ErrInvalidOperandSize
	ErrStackSizeTooLarge
	ErrDivisionByZero
	ErrMinimalIf
	ErrDisabledOpcode
	ErrInvalidOpcode
	ErrNegativeShiftCount
	ErrInvalidSplit
	ErrUnbalancedConditional
	ErrOpReturn
	ErrInvalidPublicKeyEncoding
	ErrInvalidSignature
	ErrVerifyFailed
	ErrEqualVerifyFailed
	ErrNumEqualVerifyFailed
	ErrCheckSigVerifyFailed
	ErrCheckMultiSigVerifyFailed
	ErrNullFail
	ErrInvalidPublicKeyCount
	ErrInvalidSignatureCount
	ErrNullDummy
	ErrUpgradeableNop
	ErrLockTime
	ErrPushOnly
	ErrCleanStack
	ErrTruncatedScript
	ErrEvalFalse
	ErrEmptyStack
	ErrInvalidIndex
)

var errorCodeNames = map[ErrorCode]string{
	ErrScriptTooLarge:           "ErrScriptTooLarge",
	ErrTooManyOps:               "ErrTooManyOps",
	ErrInvalidStackOperation:    "ErrInvalidStackOperation",
	ErrMinimalEncoding:          "ErrMinimalEncoding",
	ErrInvalidPushSize:          "ErrInvalidPushSize",
	ErrImpossibleEncoding:       "ErrImpossibleEncoding",
	ErrInvalidNumber:            "ErrInvalidNumber",
	ErrInvalidOperandSize:       "ErrInvalidOperandSize",
	ErrStackSizeTooLarge:        "ErrStackSizeTooLarge",
	ErrDivisionByZero:           "ErrDivisionByZero",
	ErrMinimalIf:                "ErrMinimalIf",
	ErrDisabledOpcode:           "ErrDisabledOpcode",
	ErrInvalidOpcode:            "ErrInvalidOpcode",
	ErrNegativeShiftCount:       "ErrNegativeShiftCount",
	ErrInvalidSplit:             "ErrInvalidSplit",
	ErrUnbalancedConditional:    "ErrUnbalancedConditional",
	ErrOpReturn:                 "ErrOpReturn",
	ErrInvalidPublicKeyEncoding: "ErrInvalidPublicKeyEncoding",
	ErrInvalidSignature:         "ErrInvalidSignature",
	ErrVerifyFailed:             "ErrVerifyFailed",
	ErrEqualVerifyFailed:        "ErrEqualVerifyFailed",
	ErrNumEqualVerifyFailed:     "ErrNumEqualVerifyFailed",
	ErrCheckSigVerifyFailed:     "ErrCheckSigVerifyFailed",
	ErrCheckMultiSigVerifyFailed: "ErrCheckMultiSigVerifyFailed",
	ErrNullFail:                 "ErrNullFail",
	ErrInvalidPublicKeyCount:    "ErrInvalidPublicKeyCount",
	ErrInvalidSignatureCount:    "ErrInvalidSignatureCount",
	ErrNullDummy:                "ErrNullDummy",
	ErrUpgradeableNop:           "ErrUpgradeableNop",
	ErrLockTime:                 "ErrLockTime",
	ErrPushOnly:                 "ErrPushOnly",
	ErrCleanStack:               "ErrCleanStack",
	ErrTruncatedScript:          "ErrTruncatedScript",
	ErrEvalFalse:                "ErrEvalFalse",
	ErrEmptyStack:               "ErrEmptyStack",
	ErrInvalidIndex:             "ErrInvalidIndex",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the single error type the engine produces. Callers compare
// against a Code rather than the message, which exists only for humans.
type Error struct {
	Code        ErrorCode
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// ErrorCode accessor, following the errors.As-friendly convention used
// throughout the btcsuite corpus for typed script errors.
func (e *Error) ErrorCode() ErrorCode { return e.Code }

func scriptError(code ErrorCode, desc string) *Error {
	return &Error{Code: code, Description: desc}
}

func scriptErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}
