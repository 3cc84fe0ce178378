// Package diagnostic provides structured errors and warnings for schema
// builds.
//
// A failed build is reported as one error diagnostic per failing schema,
// each with a stable code; lint findings are reported as warnings.
package diagnostic
