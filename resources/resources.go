// Package resources embeds the default screen definition files.
package resources

import "embed"

//go:embed screens/*.yaml
var ScreenFiles embed.FS
