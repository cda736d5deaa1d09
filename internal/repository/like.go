package repository

import "strings"

// likeEscaper escapes LIKE wildcards; queries use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string { return "%" + likeEscaper.Replace(s) + "%" }

func prefixPattern(s string) string { return likeEscaper.Replace(s) + "%" }
