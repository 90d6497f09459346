package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nikogura/career-kit/pkg/history"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var projectInput history.Project

//nolint:gochecknoglobals // Cobra boilerplate
var projectTechnologies string

//nolint:gochecknoglobals // Cobra boilerplate
var skillInput history.Skill

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Keep a portfolio of projects and skills",
	Long: `Keep a portfolio of projects and skills next to your application history.
Saving a project with an existing title, or a skill with an existing
category and name, updates it.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a project",
	Long: `Add or update a portfolio project.

Example:
  career-kit portfolio add --title Shop --description "E-commerce website" --technologies "React, Node.js, MongoDB, AWS"
  career-kit portfolio add --title Shop --description "E-commerce website" --technologies React --github https://github.com/you/shop`,
	RunE: runPortfolioAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioAddSkillCmd = &cobra.Command{
	Use:   "add-skill",
	Short: "Add or update a skill",
	Long: `Add or update a skill with a proficiency from 1 to 10 (default 5).

Example:
  career-kit portfolio add-skill --name Go --category programming_languages --proficiency 8`,
	RunE: runPortfolioAddSkill,
}

//nolint:gochecknoglobals // Cobra boilerplate
var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show projects and skills",
	RunE:  runPortfolioList,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.AddCommand(portfolioAddCmd, portfolioAddSkillCmd, portfolioListCmd)

	flags := portfolioAddCmd.Flags()
	flags.StringVar(&projectInput.Title, "title", "", "Project title (required)")
	flags.StringVar(&projectInput.Description, "description", "", "Project description (required)")
	flags.StringVar(&projectTechnologies, "technologies", "", "Comma-separated technologies (required)")
	flags.StringVar(&projectInput.GitHubURL, "github", "", "GitHub URL")
	flags.StringVar(&projectInput.LiveURL, "live", "", "Live demo URL")
	_ = portfolioAddCmd.MarkFlagRequired("title")
	_ = portfolioAddCmd.MarkFlagRequired("description")
	_ = portfolioAddCmd.MarkFlagRequired("technologies")

	flags = portfolioAddSkillCmd.Flags()
	flags.StringVar(&skillInput.Name, "name", "", "Skill name (required)")
	flags.StringVar(&skillInput.Category, "category", "programming_languages", "Skill category, e.g. frameworks, tools, databases")
	flags.IntVar(&skillInput.Proficiency, "proficiency", history.DefaultProficiency, "Proficiency from 1 to 10")
	_ = portfolioAddSkillCmd.MarkFlagRequired("name")
}

func runPortfolioAdd(cmd *cobra.Command, args []string) (err error) {
	project := projectInput
	project.Technologies = history.SplitTechnologies(projectTechnologies)

	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var saved history.Project
		saved, err = store.SaveProject(ctx, project)
		if err != nil {
			return err
		}

		fmt.Printf("📁 Saved project %s (%s)\n", saved.Title, strings.Join(saved.Technologies, ", "))
		return err
	})
	return err
}

func runPortfolioAddSkill(cmd *cobra.Command, args []string) (err error) {
	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var saved history.Skill
		saved, err = store.SaveSkill(ctx, skillInput)
		if err != nil {
			return err
		}

		fmt.Printf("Saved skill %s in %s (%d/%d)\n", saved.Name, saved.Category, saved.Proficiency, history.MaxProficiency)
		return err
	})
	return err
}

func runPortfolioList(cmd *cobra.Command, args []string) (err error) {
	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var projects []history.Project
		projects, err = store.ListProjects(ctx)
		if err != nil {
			return err
		}

		var skills []history.Skill
		skills, err = store.ListSkills(ctx)
		if err != nil {
			return err
		}

		printPortfolio(os.Stdout, projects, skills)
		return err
	})
	return err
}

func printPortfolio(w io.Writer, projects []history.Project, skills []history.Skill) {
	fmt.Fprintf(w, "Total projects: %d | Total skills: %d\n\n", len(projects), len(skills))

	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects added yet. Add one with 'career-kit portfolio add'.")
	}
	for _, project := range projects {
		fmt.Fprintf(w, "📁 %s\n", project.Title)
		fmt.Fprintf(w, "   Description: %s\n", project.Description)
		fmt.Fprintf(w, "   Technologies: %s\n", strings.Join(project.Technologies, ", "))
		if project.GitHubURL != "" {
			fmt.Fprintf(w, "   GitHub: %s\n", project.GitHubURL)
		}
		if project.LiveURL != "" {
			fmt.Fprintf(w, "   Live Demo: %s\n", project.LiveURL)
		}
	}

	if len(skills) == 0 {
		return
	}

	categories := make([]string, 0)
	byCategory := make(map[string][]history.Skill)
	for _, skill := range skills {
		if _, ok := byCategory[skill.Category]; !ok {
			categories = append(categories, skill.Category)
		}
		byCategory[skill.Category] = append(byCategory[skill.Category], skill)
	}

	fmt.Fprintln(w)
	for _, category := range categories {
		fmt.Fprintf(w, "%s:\n", category)
		for _, skill := range byCategory[category] {
			fmt.Fprintf(w, "   %-20s %d/%d\n", skill.Name, skill.Proficiency, history.MaxProficiency)
		}
	}
}
