// Package userdata resolves the on-disk layout CapKit reads kits from: the
// core catalog root and the modules root under ~/.capkit (or wherever env
// vars and config point instead). It also lists available modules and
// bootstraps the global layout for first-time users.
package userdata
