// Package commands defines the phonefield CLI.
//
// Commands
//
//   - countries   List the country catalog, optionally filtered by an allow-list
//   - lookup      Print a single catalog entry
//   - locale      Resolve a locale tag such as en_KE.UTF-8 to a country
//   - detect      Detect the country of an international number
//   - derive      Derive the international forms of a local phone number
//   - mask        Apply a country's display mask to raw text
//
// The root command loads the same environment configuration as the API
// server, so PHONEFIELD_DEFAULT_COUNTRY and friends apply to the CLI too.
package commands
