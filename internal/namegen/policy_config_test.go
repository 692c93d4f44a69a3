package namegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotPolicy restores the package tables after a test that overrides them.
func snapshotPolicy(t *testing.T) {
	banned := bannedNames
	compounds := compoundSurnames
	stories := make(map[string]string, len(storyFallbacks))
	for k, v := range storyFallbacks {
		stories[k] = v
	}
	t.Cleanup(func() {
		bannedNames = banned
		compoundSurnames = compounds
		storyFallbacks = stories
	})
}

func writePolicyFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPolicyFile_Overrides(t *testing.T) {
	snapshotPolicy(t)

	path := writePolicyFile(t, `
banned_names:
  - 岳飞
compound_surnames:
  - 欧阳
  - 司徒
story_fallbacks:
  钱: "钱镠：保境安民，吴越国泰民安"
`)

	require.NoError(t, LoadPolicyFile(path))

	_, banned := bannedNames["岳飞"]
	assert.True(t, banned, "file denylist should replace the built-in one")
	_, stillBanned := bannedNames["李白"]
	assert.False(t, stillBanned)

	assert.Equal(t, "司徒", Surname("司徒文"))
	assert.Equal(t, "夏", Surname("夏侯惇"), "replaced list no longer knows 夏侯")

	out := Normalize([]NameRecord{{Name: "钱多多"}}, testLogger())
	require.Len(t, out, 1)
	assert.Contains(t, out[0].SurnameInfo.Story, "钱镠")
}

func TestLoadPolicyFile_EmptySectionsKeepDefaults(t *testing.T) {
	snapshotPolicy(t)

	path := writePolicyFile(t, `story_fallbacks:
  周: "周瑜：赤壁运筹，火攻破曹"
`)

	require.NoError(t, LoadPolicyFile(path))

	_, banned := bannedNames["李白"]
	assert.True(t, banned, "empty banned_names keeps the built-in denylist")
	assert.Equal(t, "欧阳", Surname("欧阳娜娜"))
	assert.Contains(t, storyFallbacks["李"], "李白", "merge keeps existing stories")
	assert.Contains(t, storyFallbacks["周"], "周瑜")
}

func TestLoadPolicyFile_InvalidCompoundSurname(t *testing.T) {
	snapshotPolicy(t)

	path := writePolicyFile(t, `compound_surnames:
  - 王
`)

	err := LoadPolicyFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two characters")
}

func TestLoadPolicyFile_MissingFile(t *testing.T) {
	err := LoadPolicyFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
