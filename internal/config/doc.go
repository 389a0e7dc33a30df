// Package config provides layered configuration for fsview.
//
// Configuration is merged from three layers, lowest priority first:
//
//  1. Built-in defaults
//  2. A configuration file (TOML, or YAML for .yaml/.yml paths)
//  3. FSVIEW_* environment variables
//
// A file declares named filters that the CLI can apply by name:
//
//	[log]
//	level = "info"
//
//	[split]
//	delimiter = ","
//
//	[filters.words]
//	chain = ["alnum", "not:digit"]
//
//	[filters.vowels]
//	lua = '''
//	function accept(c, off)
//	  return string.find("aeiou", c, 1, true) ~= nil
//	end
//	'''
//
// Build turns a filter definition into a view over a buffer.
package config
