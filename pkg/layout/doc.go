// Package layout loads case form variants from JSON or YAML files and builds
// fresh forms from them. The bundled variants cover general examinations,
// emergencies, myopia management and follow-up visits.
package layout
