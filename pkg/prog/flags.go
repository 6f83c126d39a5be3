package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides flags shared by several
// subprograms. Each shared flag is registered the first time its method is
// called, and later calls return the same pointer.
type FlagSet struct {
	*flag.FlagSet
	config *string
	json   *bool
}

// Config returns a pointer to the value of the -config flag, the path of the
// configuration file. An empty value means the default path.
func (fs *FlagSet) Config() *string {
	if fs.config == nil {
		var config string
		fs.StringVar(&config, "config", "",
			"path to the config file (default $GEMINI_CONFIG, then gemini/config.yaml under $XDG_CONFIG_HOME or ~/.config)")
		fs.config = &config
	}
	return fs.config
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo or -version in JSON")
		fs.json = &json
	}
	return fs.json
}
