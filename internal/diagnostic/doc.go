// Package diagnostic provides structured warnings and errors for descriptor
// resolution and generator configuration.
//
// Key capabilities:
//   - Error and warning collection with stable codes
//   - Location by type name and field name
//   - Suggestions (e.g. the closest known type name)
//   - Conversion of all errors into a single Go error
package diagnostic
