package schema

import "tableflip.dev/inbox/pkg/task"

// Tasks is the migration history for the tasks collection. Versions 2→3
// and 3→4 are deliberate no-ops: those version numbers were consumed by
// index-only changes in earlier deployments, and keeping the slots means
// stored version stamps still line up.
var Tasks = Chain{
	Name: "tasks",
	Steps: []Migration{
		taskDefaultFolder,
		taskRenameFolderID,
		passthrough,
		passthrough,
	},
}

// Folders is the migration history for the folders collection. The single
// step drops fields the folder shape never declared.
var Folders = Chain{
	Name: "folders",
	Steps: []Migration{
		folderKeepKnownFields,
	},
}

// taskDefaultFolder backfills the folder sentinel on documents written
// before tasks had folders.
func taskDefaultFolder(doc Doc) Doc {
	if s, ok := doc["folder"].(string); !ok || s == "" {
		doc["folder"] = task.DefaultFolder
	}
	return doc
}

// taskRenameFolderID prefers the short-lived legacy folderId field over
// folder, then removes it.
func taskRenameFolderID(doc Doc) Doc {
	if s, ok := doc["folderId"].(string); ok && s != "" {
		doc["folder"] = s
	}
	delete(doc, "folderId")
	if s, ok := doc["folder"].(string); !ok || s == "" {
		doc["folder"] = task.DefaultFolder
	}
	return doc
}

func folderKeepKnownFields(doc Doc) Doc {
	out := Doc{
		"id":   doc["id"],
		"name": doc["name"],
	}
	return out
}

func passthrough(doc Doc) Doc {
	return doc
}
