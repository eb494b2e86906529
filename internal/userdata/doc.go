// Package userdata resolves the on-disk layout of the attic home directory
// (~/.attic/): the record database, the catalog cache, and the default
// download area. Every path honors an ATTIC_* environment override so tests
// and multi-profile setups can relocate the whole tree.
package userdata
