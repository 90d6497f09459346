package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var questionsCategory string

//nolint:gochecknoglobals // Cobra boilerplate
var questionsSubcategory string

//nolint:gochecknoglobals // Cobra boilerplate
var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the interview question bank",
	Long: `Browse the interview question bank. Questions are grouped into technical
(with subcategories such as python or sql), behavioral and system_design.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions with their answers",
	Long: `List questions with their answers.

Example:
  career-kit questions list
  career-kit questions list --category technical --subcategory sql`,
	RunE: runQuestionsList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var questionsRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show one random question",
	RunE:  runQuestionsRandom,
}

//nolint:gochecknoglobals // Cobra boilerplate
var questionsTipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show general interview tips",
	RunE:  runQuestionsTips,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsListCmd, questionsRandomCmd, questionsTipsCmd)

	questionsListCmd.Flags().StringVar(&questionsCategory, "category", "", "technical, behavioral or system_design (default all)")
	questionsListCmd.Flags().StringVar(&questionsSubcategory, "subcategory", "", "Technical subcategory, e.g. python")
	questionsRandomCmd.Flags().StringVar(&questionsCategory, "category", "", "Draw from one category (default all)")
}

func setupBank() (cfg config.Config, bank *questions.Bank, err error) {
	cfg, err = loadConfig()
	if err != nil {
		return cfg, bank, err
	}
	bank, err = loadBank(cfg)
	return cfg, bank, err
}

func runQuestionsList(cmd *cobra.Command, args []string) (err error) {
	var bank *questions.Bank
	_, bank, err = setupBank()
	if err != nil {
		return err
	}

	list := bank.All()
	if questionsCategory != "" {
		if !bank.HasCategory(questionsCategory) {
			err = errors.Errorf("unknown category %q (choose from %v)", questionsCategory, bank.Categories())
			return err
		}
		list = bank.ByCategory(questionsCategory, questionsSubcategory)
	}

	if len(list) == 0 {
		fmt.Println("No questions found.")
		return err
	}

	for i, q := range list {
		printQuestion(os.Stdout, i+1, q)
	}
	return err
}

func runQuestionsRandom(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	var bank *questions.Bank
	cfg, bank, err = setupBank()
	if err != nil {
		return err
	}

	sampler := questions.NewSampler(bank, newRand(cfg))
	q, ok := sampler.Random(questionsCategory)
	if !ok {
		err = errors.Errorf("no questions available for category %q", questionsCategory)
		return err
	}

	printQuestion(os.Stdout, 0, q)
	return err
}

func runQuestionsTips(cmd *cobra.Command, args []string) (err error) {
	var bank *questions.Bank
	_, bank, err = setupBank()
	if err != nil {
		return err
	}

	for _, tip := range bank.Tips() {
		fmt.Printf("• %s\n", tip)
	}
	return err
}

// printQuestion writes one question block. A zero number omits the numbering.
func printQuestion(w io.Writer, number int, q questions.Question) {
	if number > 0 {
		fmt.Fprintf(w, "%d. ", number)
	}
	fmt.Fprintf(w, "[%s] %s\n", q.Category, q.Question)
	fmt.Fprintf(w, "   Answer: %s\n", q.Answer)
	for _, tip := range q.Tips {
		fmt.Fprintf(w, "   Tip: %s\n", tip)
	}
	fmt.Fprintln(w)
}
