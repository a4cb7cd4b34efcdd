package topic

// Term pairs a matching substring with its canned reply. Tables are slices so
// that iteration order is the declaration order.
type Term struct {
	Match string
	Reply string
}

var defaultGreetings = []Term{
	{Match: "oi", Reply: "Olá! Como posso ajudar você hoje?"},
	{Match: "olá", Reply: "Olá! Tudo bem? Estou aqui para ajudar."},
	{Match: "bom dia", Reply: "Bom dia! Como posso ajudar você?"},
	{Match: "boa tarde", Reply: "Boa tarde! Precisa de alguma informação?"},
	{Match: "boa noite", Reply: "Boa noite! Como posso ajudar?"},
	{Match: "e aí", Reply: "E aí! Tudo certo? Como posso ajudar?"},
}

var defaultFarewells = []Term{
	{Match: "tchau", Reply: "Até mais! Se precisar, estou aqui."},
	{Match: "até logo", Reply: "Até logo! Volte sempre 😊"},
	{Match: "até mais", Reply: "Até mais! Foi um prazer ajudar."},
	{Match: "falou", Reply: "Falou! Qualquer coisa, me chame!"},
	{Match: "obrigado", Reply: "Disponha! Sempre que precisar, estou por aqui."},
	{Match: "valeu", Reply: "Valeu! Conte comigo sempre!"},
}

var defaultAllowlist = []string{
	"jovem programador",
	"curso",
	"inscrição",
	"site",
	"senac",
	"sesi",
	"empregabilidade",
	"ensino",
	"formação",
	"aprendizagem",
}
