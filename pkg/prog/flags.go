package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It also provides methods to register flags
// shared by multiple subprograms; each of them is registered at most once, no
// matter how many subprograms ask for it.
type FlagSet struct {
	*flag.FlagSet
	json *bool
	db   *string
	rc   *string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo or -history in JSON")
		fs.json = &json
	}
	return fs.json
}

// DB returns a pointer to the value of the -db flag.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "",
			"Path to the command history database; overrides the rc file")
		fs.db = &db
	}
	return fs.db
}

// RC returns a pointer to the value of the -rc flag.
func (fs *FlagSet) RC() *string {
	if fs.rc == nil {
		var rc string
		fs.StringVar(&rc, "rc", "",
			"Path to the rc file; defaults to $XDG_CONFIG_HOME/rsed/rc.yaml")
		fs.rc = &rc
	}
	return fs.rc
}
