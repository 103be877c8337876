package engine

import "github.com/spaghettifunk/lumen/engine/config"

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Settings loaded from defaults, the config file and the command line.
	// The window size and the application name come from here.
	Settings *config.Config
}
