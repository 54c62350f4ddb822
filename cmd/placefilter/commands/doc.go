// Package commands defines the placefilter CLI.
//
// Commands
//
//   - (root)   Run the interactive location filter
//   - show     Print the saved selection and its counts
//   - select   Toggle a country, state or city
//   - clear    Clear a level and everything below it
//   - reset    Clear the whole selection
//   - options  List the choices for a level, optionally filtered
//   - export   Write the filtered catalog as JSON
//   - prefs    List the rows of the sqlite preference store
//   - config init  Write the effective configuration to the config file
//
// Every command opens the same session the interactive filter uses, so a
// selection made from the shell is restored the next time the filter runs.
package commands
