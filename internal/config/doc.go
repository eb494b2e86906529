// Package config reads and writes user settings stored at ~/.attic/config.yaml.
//
// Recognized keys:
//
//	base_install_dir  directory titles are installed under
//	wine_path         compatibility runtime used to launch installed titles
//	api_url           base URL of the catalog/license service
//	username          account name, cached by `attic login`
//	password          account password, cached by `attic login`
//
// Mutations persist immediately: Set writes the file before returning, so a
// change made by one command is visible to the next.
package config
