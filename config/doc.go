// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads client settings from defaults, YAML and the
environment, and turns them into a template request descriptor.

Sources are layered, later sources overriding earlier ones: built-in
defaults, then each source passed to Load in order, then environment
variables. Environment variable names are the settings keys upper-cased,
prefixed with EnvPrefix, with nesting expressed by a double underscore:

	APICLIENT_BASE_URL=https://api.example.com
	APICLIENT_RETRY__COUNT=3
	APICLIENT_TRANSPORT__HTTP2=false

Typical use:

	s, err := config.Load(config.File("client.yaml"))
	if err != nil {
		return err
	}
	api, err := s.Template()
*/
package config
