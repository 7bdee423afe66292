// Package all imports every rule package so their init() functions
// register with the default registry. Import this package with a
// blank identifier to enable the full catalog:
//
//	import _ "github.com/DonIsaac/zlint-sub002/internal/rules/all"
package all

import (
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/emptyfile"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/homelesstry"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/nocatchall"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/noreturntry"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/noundeclaredidentifier"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/nounnecessarycomptime"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/preferconst"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/shadowing"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unresolvedimport"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unsafeundefined"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unuseddecls"
)
