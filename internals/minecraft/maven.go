package minecraft

import (
	"fmt"
	"strings"
)

// PathFromName turns a maven style coordinate
// (group:artifact:version[:classifier]) into a library path
func PathFromName(name string) (string, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("expected library name %q in format '<group_id>:<artifact_id>:<version>:[classifier]'", name)
	}

	groupID, artifactID, version := parts[0], parts[1], parts[2]

	classifier := ""
	if len(parts) > 3 {
		classifier = "-" + parts[3]
	}

	fileName := artifactID + "-" + version + classifier + ".jar"

	path := strings.Split(groupID, ".")
	path = append(path, artifactID, version, fileName)

	return strings.Join(path, "/"), nil
}
