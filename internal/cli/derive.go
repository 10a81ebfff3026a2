package cli

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/raphaelgruber/astroname/internal/derive"
	"github.com/spf13/cobra"
)

var (
	blendSearchType string
	blendRules      []string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Offline name calculations",
	Long: `Run the numerology, zodiac, sibling and blending helpers without calling
an LLM.`,
}

var numerologyCmd = &cobra.Command{
	Use:   "numerology <name>...",
	Short: "Pythagorean numerology number of a name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, derive.Numerology(name))
		}
	},
}

var astrologyCmd = &cobra.Command{
	Use:   "astrology <YYYY-MM-DD>",
	Short: "Western zodiac sign for a birth date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := derive.ParseBirthDate(args[0]); !ok {
			return fmt.Errorf("invalid birth date %q: want YYYY-MM-DD", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), derive.AstrologySign(args[0]))
		return nil
	},
}

var siblingCmd = &cobra.Command{
	Use:   "sibling <name> <siblings>",
	Short: "Check a name against comma-separated sibling names",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		answer := "no"
		if derive.SiblingCompatible(args[0], args[1]) {
			answer = "yes"
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
	},
}

var blendCmd = &cobra.Command{
	Use:   "blend <father> <mother>",
	Short: "Blend parent names into new candidates",
	Long: `Blend parent names into new candidates.

Without --search-type or --rule every strategy runs.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var candidates []derive.BlendCandidate
		if blendSearchType == "" && len(blendRules) == 0 {
			candidates = derive.BlendAll(args[0], args[1])
		} else {
			candidates = derive.BlendNames(args[0], args[1], blendRules, blendSearchType)
		}

		out := cmd.OutOrStdout()
		if len(candidates) == 0 {
			fmt.Fprintln(out, "No blends found.")
			return
		}
		for _, c := range candidates {
			fmt.Fprintf(out, "%s\t%s\n", capitalize(c.Name), c.Explanation)
		}
	},
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func init() {
	blendCmd.Flags().StringVar(&blendSearchType, "search-type", "", "first-letters, syllable-blend or vowel-consonant")
	blendCmd.Flags().StringSliceVar(&blendRules, "rule", nil, "naming rule (repeatable)")

	deriveCmd.AddCommand(numerologyCmd)
	deriveCmd.AddCommand(astrologyCmd)
	deriveCmd.AddCommand(siblingCmd)
	deriveCmd.AddCommand(blendCmd)
}
