// Package diagnostic collects findings about struct definitions.
//
// Loading a definition file does not stop at the first problem: unknown
// validators, unknown transforms, defaults that can never apply and
// similar findings are gathered with a severity, a stable code and the
// location they refer to, so all of them can be reported at once.
package diagnostic
