package tables

import "github.com/psieve-go/psqsieve/uint128"

// Pseudosquare pairs a prime p with its pseudosquare L_p, the smallest
// positive number ≡ 1 (mod 8) that is a quadratic residue modulo every
// odd prime <= p yet is not itself a perfect square.
type Pseudosquare struct {
	P  uint32
	Lp uint128.Uint128
}

// mustLp parses a decimal pseudosquare literal. These are fixed,
// known-good constants transcribed from the reference table, so a
// parse failure here can only be a transcription bug, not bad input.
func mustLp(s string) uint128.Uint128 {
	v, err := uint128.FromString(s)
	if err != nil {
		panic("tables: malformed pseudosquare literal " + s + ": " + err.Error())
	}
	return v
}

// Pseudosquares holds the known pseudosquares for p <= 373, i.e. up to
// L_373 ~ 4.2e24. This is the entire domain over which the pseudosquares
// primality test is valid; spec.md §5 derives the sieve's parameters so
// that n/s never exceeds L_373.
var Pseudosquares = [74]Pseudosquare{
	{2, mustLp("17")},
	{3, mustLp("73")},
	{5, mustLp("241")},
	{7, mustLp("1009")},
	{11, mustLp("2641")},
	{13, mustLp("8089")},
	{17, mustLp("18001")},
	{19, mustLp("53881")},
	{23, mustLp("87481")},
	{29, mustLp("117049")},
	{31, mustLp("515761")},
	{37, mustLp("1083289")},
	{41, mustLp("3206641")},
	{43, mustLp("3818929")},
	{47, mustLp("9257329")},
	{53, mustLp("22000801")},
	{59, mustLp("48473881")},
	{61, mustLp("48473881")},
	{67, mustLp("175244281")},
	{71, mustLp("427733329")},
	{73, mustLp("427733329")},
	{79, mustLp("898716289")},
	{83, mustLp("2805544681")},
	{89, mustLp("2805544681")},
	{97, mustLp("2805544681")},
	{101, mustLp("10310263441")},
	{103, mustLp("23616331489")},
	{107, mustLp("85157610409")},
	{109, mustLp("85157610409")},
	{113, mustLp("196265095009")},
	{127, mustLp("196265095009")},
	{131, mustLp("2871842842801")},
	{137, mustLp("2871842842801")},
	{139, mustLp("2871842842801")},
	{149, mustLp("26250887023729")},
	{151, mustLp("26250887023729")},
	{157, mustLp("112434732901969")},
	{163, mustLp("112434732901969")},
	{167, mustLp("112434732901969")},
	{173, mustLp("178936222537081")},
	{179, mustLp("178936222537081")},
	{181, mustLp("696161110209049")},
	{191, mustLp("696161110209049")},
	{193, mustLp("2854909648103881")},
	{197, mustLp("6450045516630769")},
	{199, mustLp("6450045516630769")},
	{211, mustLp("11641399247947921")},
	{223, mustLp("11641399247947921")},
	{227, mustLp("190621428905186449")},
	{229, mustLp("196640148121928601")},
	{233, mustLp("712624335095093521")},
	{239, mustLp("1773855791877850321")},
	{241, mustLp("2327687064124474441")},
	{251, mustLp("6384991873059836689")},
	{257, mustLp("8019204661305419761")},
	{263, mustLp("10198100582046287689")},
	{269, mustLp("10198100582046287689")},
	{271, mustLp("10198100582046287689")},
	{277, mustLp("69848288320900186969")},
	{281, mustLp("208936365799044975961")},
	{283, mustLp("533552663339828203681")},
	{293, mustLp("936664079266714697089")},
	{307, mustLp("936664079266714697089")},
	{311, mustLp("2142202860370269916129")},
	{313, mustLp("2142202860370269916129")},
	{317, mustLp("2142202860370269916129")},
	{331, mustLp("13649154491558298803281")},
	{337, mustLp("34594858801670127778801")},
	{347, mustLp("99492945930479213334049")},
	{349, mustLp("99492945930479213334049")},
	{353, mustLp("295363187400900310880401")},
	{359, mustLp("295363187400900310880401")},
	{367, mustLp("3655334429477057460046489")},
	{373, mustLp("4235025223080597503519329")},
}

// MaxLp is the largest known pseudosquare, L_373 — the ceiling on
// stop/s that spec.md §5's parameter derivation must respect.
var MaxLp = Pseudosquares[len(Pseudosquares)-1].Lp
