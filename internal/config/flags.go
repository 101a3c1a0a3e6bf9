package config

import (
	"flag"
	"os"

	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   fallback language tag (e.g. "en")
//	-g string   GeoIP database path
//	-t string   database type (sqlite, postgres, mysql)
//	-H string   database host
//	-P string   database port
//	-n string   database name (file name for sqlite)
//	-u string   database user
//	-p string   database password
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config file flags.
// An unknown fallback tag passed via -f fails loudly: the process must not
// start with an unparseable default language.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-g", "-t", "-H", "-P", "-n", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fallback := fs.String("f", "", "fallback language tag")
	fs.StringVar(&config.GeoIPDatabasePath, "g", config.GeoIPDatabasePath, "GeoIP database path")

	dbType := fs.String("t", string(config.Database.Type), "database type (sqlite, postgres, mysql)")
	fs.StringVar(&config.Database.Host, "H", config.Database.Host, "database host")
	fs.StringVar(&config.Database.Port, "P", config.Database.Port, "database port")
	fs.StringVar(&config.Database.Name, "n", config.Database.Name, "database name")
	fs.StringVar(&config.Database.User, "u", config.Database.User, "database user")
	password := fs.String("p", "", "database password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *fallback != "" {
		config.FallbackLanguage = culture.MustParse(*fallback)
	}
	config.Database.Type = DBType(*dbType)
	if *password != "" {
		config.Database.Password = []byte(*password)
	}
}
