// Package validator provides declarative field checks that collect every
// failure instead of stopping at the first one.
//
//	err := validator.Apply(
//		validator.RequiredString("session_id", req.SessionID),
//		validator.MaxLenString("session_id", req.SessionID, 128),
//		validator.ValidEmail("email", req.Email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.Has("email") {
//		// ...
//	}
package validator
