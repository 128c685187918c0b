// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The picker is built from three parts: NormalizeQuery decides whether
// input is worth searching, the Dispatcher debounces eligible queries,
// and Dedupe folds provider records into candidates. PickerService owns
// the observable state and is the only place it changes.
package services
