package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/store"
)

// resetFlags restores every flag of c and its subcommands to its default,
// since the command tree is shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PATHFINDER_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("PATHFINDER_PROVIDER", "")
	t.Setenv("PATHFINDER_API_URL", "")
	t.Setenv("PATHFINDER_CAREER", "")
	t.Setenv("PATHFINDER_LOG", "")
	return filepath.Join(dir, "pathfinder.db")
}

func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListPathways(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pathways for "+catalog.SampleCareerID)
	assert.Contains(t, out, "B.Tech in Computer Science")
	assert.Contains(t, out, "Full-Stack Web Bootcamp")
}

func TestListWithFilter(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "list", "--filter", "pathway_type=bootcamp")
	require.NoError(t, err)
	assert.Contains(t, out, "Full-Stack Web Bootcamp")
	assert.NotContains(t, out, "B.Tech in Computer Science")
}

func TestListRejectsInvalidFilter(t *testing.T) {
	db := setupEnv(t)

	_, err := execute(t, db, "list", "--filter", "budget=lots")
	var ve *explore.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, explore.FieldBudget, ve.Field)

	_, err = execute(t, db, "list", "--filter", "budget")
	assert.ErrorContains(t, err, "want field=value")
}

func TestListInstitutionNeedsPathway(t *testing.T) {
	db := setupEnv(t)

	_, err := execute(t, db, "list", "--institution", "iit-bombay")
	assert.ErrorIs(t, err, explore.ErrNoPathwaySelected)
}

func TestListAdmission(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "list", "--pathway", "btech-cse", "--institution", "iit-bombay", "--tab", "admission")
	require.NoError(t, err)
	assert.Contains(t, out, "btech-cse: Admission")
	assert.Contains(t, out, "Applications:")
}

func TestListUnknownTab(t *testing.T) {
	db := setupEnv(t)

	_, err := execute(t, db, "list", "--pathway", "btech-cse", "--tab", "fees")
	assert.ErrorContains(t, err, `unknown tab "fees"`)
}

func TestStatsAfterList(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No fetches recorded yet.")

	_, err = execute(t, db, "list", "--pathway", "btech-cse", "--tab", "courses")
	require.NoError(t, err)

	out, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.OpListPathways)
	assert.Contains(t, out, catalog.OpListCourses)
	assert.Contains(t, out, "TOTAL")
}

func TestResetClearsSession(t *testing.T) {
	db := setupEnv(t)
	ctx := context.Background()

	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.SessionRepo().Save(ctx, &store.SessionState{
		SessionID: "s1",
		CareerID:  catalog.SampleCareerID,
		PathwayID: "bca",
	}))
	require.NoError(t, st.Close())

	out, err := execute(t, db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Session cleared.")

	st, err = store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	saved, err := st.SessionRepo().Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestResetAllPrunesFetches(t *testing.T) {
	db := setupEnv(t)

	_, err := execute(t, db, "list")
	require.NoError(t, err)

	out, err := execute(t, db, "reset", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetch history deleted.")

	out, err = execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No fetches recorded yet.")
}

func TestConfigShow(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "config", "show", "--career", "data-scientist")
	require.NoError(t, err)
	assert.Contains(t, out, "career: data-scientist")
	assert.Contains(t, out, "provider: mock")
}

func TestConfigInit(t *testing.T) {
	db := setupEnv(t)
	path := filepath.Join(t.TempDir(), "pf", "config.yaml")

	out, err := execute(t, db, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, db, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, db, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	db := setupEnv(t)

	out, err := execute(t, db, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pathfinder (devel)")
}
