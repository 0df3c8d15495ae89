package tree

import (
	"fmt"

	"github.com/snapfs-vcs/snapfs/internal/canon"
	"github.com/snapfs-vcs/snapfs/internal/hashid"
)

// ToDict renders a FileEntry as a canonical dictionary (§6 FE schema).
func (fe FileEntry) ToDict() map[string]any {
	dict := map[string]any{
		"path":    fe.Path,
		"is_blob": fe.IsBlob,
		"hashid":  string(fe.HashId),
	}
	if fe.BlobPath != "" {
		dict["blob_path"] = fe.BlobPath
	} else {
		dict["blob_path"] = nil
	}
	return dict
}

// FileEntryFromDict parses a FileEntry dictionary.
func FileEntryFromDict(dict map[string]any) (FileEntry, error) {
	path, err := canon.String(dict, "path")
	if err != nil {
		return FileEntry{}, err
	}
	isBlob, _ := dict["is_blob"].(bool)
	hashidStr, _ := dict["hashid"].(string)
	blobPath, _ := dict["blob_path"].(string)
	return FileEntry{
		Path:     path,
		IsBlob:   isBlob,
		BlobPath: blobPath,
		HashId:   hashid.HashId(hashidStr),
	}, nil
}

// ToDict renders an Author dictionary.
func (a Author) ToDict() map[string]any {
	return map[string]any{
		"name":     a.Name,
		"fullname": a.Fullname,
		"email":    a.Email,
	}
}

// AuthorFromDict parses an Author dictionary.
func AuthorFromDict(dict map[string]any) (Author, error) {
	name, err := canon.String(dict, "name")
	if err != nil {
		return Author{}, err
	}
	fullname, _ := dict["fullname"].(string)
	email, _ := dict["email"].(string)
	return Author{Name: name, Fullname: fullname, Email: email}, nil
}

// ToDict renders a Commit dictionary (§6 schema).
func (c Commit) ToDict() map[string]any {
	prev := make([]any, len(c.PreviousCommitsHashIds))
	for i, h := range c.PreviousCommitsHashIds {
		prev[i] = string(h)
	}
	return map[string]any{
		"author":                    c.Author.ToDict(),
		"message":                   c.Message,
		"tree_hashid":               string(c.TreeHashId),
		"previous_commits_hashids": prev,
	}
}

// CommitFromDict parses a Commit dictionary.
func CommitFromDict(dict map[string]any) (Commit, error) {
	authorDict, err := canon.Dict(dict, "author")
	if err != nil {
		return Commit{}, err
	}
	author, err := AuthorFromDict(authorDict)
	if err != nil {
		return Commit{}, fmt.Errorf("commit: author: %w", err)
	}
	message, err := canon.String(dict, "message")
	if err != nil {
		return Commit{}, err
	}
	treeHashId, err := canon.String(dict, "tree_hashid")
	if err != nil {
		return Commit{}, err
	}
	prevStrs, err := canon.StringSlice(dict, "previous_commits_hashids")
	if err != nil {
		return Commit{}, err
	}
	prev := make([]hashid.HashId, len(prevStrs))
	for i, s := range prevStrs {
		prev[i] = hashid.HashId(s)
	}
	return Commit{
		Author:                 author,
		Message:                message,
		TreeHashId:             hashid.HashId(treeHashId),
		PreviousCommitsHashIds: prev,
	}, nil
}

// ToDict renders a Head dictionary.
func (h Head) ToDict() map[string]any {
	return map[string]any{"ref": h.Ref}
}

// HeadFromDict parses a Head dictionary.
func HeadFromDict(dict map[string]any) (Head, error) {
	ref, err := canon.String(dict, "ref")
	if err != nil {
		return Head{}, err
	}
	return Head{Ref: ref}, nil
}

// ToDict renders a Branch dictionary.
func (b Branch) ToDict() map[string]any {
	return map[string]any{"commit_hashid": string(b.CommitHashId)}
}

// BranchFromDict parses a Branch dictionary.
func BranchFromDict(dict map[string]any) (Branch, error) {
	h, err := canon.String(dict, "commit_hashid")
	if err != nil {
		return Branch{}, err
	}
	return Branch{CommitHashId: hashid.HashId(h)}, nil
}

// ToDict renders a Tag dictionary.
func (t Tag) ToDict() map[string]any {
	return map[string]any{
		"commit_hashid": string(t.CommitHashId),
		"message":       t.Message,
	}
}

// TagFromDict parses a Tag dictionary.
func TagFromDict(dict map[string]any) (Tag, error) {
	h, err := canon.String(dict, "commit_hashid")
	if err != nil {
		return Tag{}, err
	}
	message, _ := dict["message"].(string)
	return Tag{CommitHashId: hashid.HashId(h), Message: message}, nil
}

// ToDict renders a Stage dictionary (§6 schema).
func (s Stage) ToDict() map[string]any {
	toList := func(entries []FileEntry) []any {
		out := make([]any, len(entries))
		for i, fe := range entries {
			out[i] = fe.ToDict()
		}
		return out
	}
	return map[string]any{
		"added_files":   toList(s.Added),
		"updated_files": toList(s.Updated),
		"removed_files": toList(s.Removed),
	}
}

// StageFromDict parses a Stage dictionary.
func StageFromDict(dict map[string]any) (Stage, error) {
	fromList := func(key string) ([]FileEntry, error) {
		raw, ok := dict[key].([]any)
		if !ok {
			if dict[key] == nil {
				return nil, nil
			}
			return nil, fmt.Errorf("stage: field %q is not an array", key)
		}
		out := make([]FileEntry, len(raw))
		for i, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("stage: field %q[%d] is not an object", key, i)
			}
			fe, err := FileEntryFromDict(m)
			if err != nil {
				return nil, err
			}
			out[i] = fe
		}
		return out, nil
	}

	added, err := fromList("added_files")
	if err != nil {
		return Stage{}, err
	}
	updated, err := fromList("updated_files")
	if err != nil {
		return Stage{}, err
	}
	removed, err := fromList("removed_files")
	if err != nil {
		return Stage{}, err
	}
	return Stage{Added: added, Updated: updated, Removed: removed}, nil
}
