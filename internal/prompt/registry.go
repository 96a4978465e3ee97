// Package prompt maps pedagogical "momento" tags to rendered system prompts.
// Rendering is pure string formatting: no I/O, no state mutation, and a
// template never fails — missing profile fields degrade to defaults.
package prompt

import (
	"fmt"

	"github.com/profia/tutoria/internal/domain"
)

// Template renders one system prompt from the student profile.
type Template func(ctx domain.UserContext) string

// Entry pairs a momento key with its template.
type Entry struct {
	Momento  string
	Template Template
}

// Registry is an immutable momento-to-template mapping, built once at
// startup and injected wherever prompts are rendered.
type Registry struct {
	templates map[string]Template
}

// NewRegistry builds a registry from the default template set.
func NewRegistry() *Registry {
	return NewRegistryFromEntries(DefaultEntries())
}

// NewRegistryFromEntries builds a registry from an explicit template list.
// Later entries override earlier ones with the same momento.
func NewRegistryFromEntries(entries []Entry) *Registry {
	templates := make(map[string]Template, len(entries))
	for _, entry := range entries {
		templates[entry.Momento] = entry.Template
	}
	return &Registry{templates: templates}
}

// Render returns the system prompt for the given momento, or "" when the
// momento is absent or unknown. Callers treat "" as degraded mode and use
// the raw user message as the whole prompt.
func (r *Registry) Render(momento string, ctx domain.UserContext) string {
	template, ok := r.templates[momento]
	if !ok {
		return ""
	}
	if ctx == nil {
		ctx = domain.UserContext{}
	}
	return template(ctx)
}

// Known reports whether the momento has a registered template.
func (r *Registry) Known(momento string) bool {
	_, ok := r.templates[momento]
	return ok
}

// Default placeholders for missing profile fields.
const (
	defaultNome    = "Estudante"
	defaultIdade   = "12"
	defaultMateria = "matemática"
	defaultData    = "ontem"
	defaultMoedas  = "X"
)

// DefaultEntries returns the full pedagogical template set.
func DefaultEntries() []Entry {
	return []Entry{
		{"boas_vindas", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			return fmt.Sprintf("Oi, %s! Aqui quem fala é seu(a) prof 100%% IA — pronto(a) para estudar do seu jeito!\nO que você quer aprender, treinar ou perguntar hoje? Pode escolher matéria, pedir desafio, ou só conversar sobre escola.\nO app é todo seu!", nome)
		}},
		{"incentivo_tentativa", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			return fmt.Sprintf("Ótima dúvida, %s! Antes de eu mostrar a resposta, que tal tentar resolver?\nPode chutar, desenhar, ou explicar do seu jeito – eu vou te ajudar em cada passo!\nSe quiser, posso dar uma dica ou mostrar um exemplo parecido.", nome)
		}},
		{"dica_progressiva", func(_ domain.UserContext) string {
			return "Vejo que está com dúvida nesse exercício. Que tal começarmos juntos?\n👉 Dica 1: [Dê uma dica leve, sem entregar a resposta]\nSe precisar, posso dar mais uma dica ou explicar de outro jeito!"
		}},
		{"explicacao_idade", func(ctx domain.UserContext) string {
			idade := ctx.StringField("idade", defaultIdade)
			gosto := ctx.StringField("gosto", "")
			s := fmt.Sprintf("Você prefere que eu explique como se você tivesse %s anos, ou de um jeito mais avançado?\nPosso usar exemplos do seu dia a dia – só me contar do que gosta!", idade)
			if gosto != "" {
				s += fmt.Sprintf(" Por exemplo: %s", gosto)
			}
			return s
		}},
		{"feedback_tentativa", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			erro := ctx.StringField("erro", "")
			return fmt.Sprintf("Mandou bem tentando, %s! Veja só: você errou por pouco aqui — %s.\nVamos tentar juntos de novo? O importante é não desistir!", nome, erro)
		}},
		{"desafio_personalizado", func(ctx domain.UserContext) string {
			materia := ctx.StringField("materia", defaultMateria)
			return fmt.Sprintf("Agora, vou criar um desafio só para você, no seu nível e focado em %s.\nPreparado(a) para praticar? Se acertar, já ganha moedas para personalizar seu avatar!", materia)
		}},
		{"recebendo_imagem", func(_ domain.UserContext) string {
			return "Recebi sua foto do caderno! Vou analisar o exercício. Aguenta só um segundo…\n[Depois do OCR:]\nPronto, entendi o que você precisa! Quer tentar resolver antes de eu explicar?"
		}},
		{"privacidade_imagem", func(_ domain.UserContext) string {
			return "Percebi que você tentou enviar uma imagem que não é de um exercício ou atividade escolar.\nPor segurança, só aceito imagens de cadernos, provas ou materiais de estudo.\nSe precisar de ajuda, me conte por texto ou áudio!"
		}},
		{"multimidia", func(_ domain.UserContext) string {
			return "Você prefere ouvir a explicação em áudio ou ler o texto?\nPosso gravar um áudio explicando, ou se quiser, gerar um desenho/diagrama para facilitar!"
		}},
		{"gamificacao", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			moedas := ctx.StringField("moedas", defaultMoedas)
			return fmt.Sprintf("Parabéns, %s! Você ganhou %s moedas por concluir esse desafio!\nQuer usar suas moedas para trocar o avatar, desbloquear dicas ou marcar uma revisão especial?", nome, moedas)
		}},
		{"sugestao_agenda", func(_ domain.UserContext) string {
			return "Que tal agendar um lembrete para revisar esse conteúdo amanhã?\nPosso te avisar quando chegar a hora!"
		}},
		{"resumo_outra_forma", func(ctx domain.UserContext) string {
			idade := ctx.StringField("idade", defaultIdade)
			return fmt.Sprintf("Se quiser, posso resumir a explicação, explicar de outro jeito ou ensinar como se você tivesse %s anos.\nMe diga qual prefere!", idade)
		}},
		{"regional_inclusivo", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			return fmt.Sprintf("Bora resolver essa juntxs, %s? Se empacar, não tem problema — a gente desenrola aqui do jeitinho brasileiro!\nMe diz: prefere um exemplo, um resumão ou uma dica esperta?", nome)
		}},
		{"acolhimento_frustracao", func(_ domain.UserContext) string {
			return "Percebi que você ficou um pouco parado(a) ou talvez desanimado(a). Isso acontece, viu? Todo mundo tem dias assim.\nQue tal tentarmos um desafio rapidinho, só para aquecer? Se quiser conversar ou só jogar um miniquiz, estou aqui!"
		}},
		{"autonomia_descoberta", func(_ domain.UserContext) string {
			return "Você sabia que pode pedir para eu te ensinar de outras formas?\nSó falar: “me explica com história”, “quero dica”, “faz um desenho”, ou “me manda um áudio”!\nDo que você precisa agora?"
		}},
		{"exploracao_funcionalidades", func(_ domain.UserContext) string {
			return "Sabia que dá pra gravar sua dúvida em áudio? Ou pedir para eu guardar essa explicação para revisar depois?\nÉ só pedir! O que você quer experimentar agora?"
		}},
		{"microdesafio", func(_ domain.UserContext) string {
			return "Topa um desafio relâmpago valendo moedas?\nVou criar uma pergunta surpresa sobre o tema que você escolher!\nSe acertar, já desbloqueia uma dica exclusiva para o próximo exercício."
		}},
		{"curiosidade_professor", func(_ domain.UserContext) string {
			return "E se você pudesse criar uma pergunta para mim, sobre qualquer coisa que aprendeu hoje?\nManda ver! Se eu errar, você ganha moedas extras!"
		}},
		{"inclusao_parental", func(_ domain.UserContext) string {
			return "Se quiser, pode pedir para eu mostrar um resumo para seus pais ou responsáveis, explicando o que você estudou hoje e seu progresso!"
		}},
		{"feedback_ultra", func(ctx domain.UserContext) string {
			nome := ctx.StringField("nome", defaultNome)
			return fmt.Sprintf("Uau, que evolução, %s!\nPercebi que você tentou, errou, tentou de novo e chegou mais perto da resposta certa.\nIsso é aprender de verdade! Sigo aqui para o que precisar, sempre comemorando cada avanço seu!", nome)
		}},
		{"troca_professor", func(_ domain.UserContext) string {
			return "Quer experimentar outro jeito de aprender?\nPosso trocar minha voz para masculina, feminina, ou até mudar o sotaque!\nFala como prefere!"
		}},
		{"modo_offline", func(_ domain.UserContext) string {
			return "Sem internet agora? Sem crise!\nPosso te propor miniquizzes prontos ou desafios rápidos pra treinar até a conexão voltar."
		}},
		{"revisao_exercicio", func(ctx domain.UserContext) string {
			materia := ctx.StringField("materia", defaultMateria)
			data := ctx.StringField("data", defaultData)
			return fmt.Sprintf("Você pediu para revisar o exercício de %s feito em %s.\nVou localizar e te mostrar o exercício e a explicação que fizemos juntos.\nSe quiser tentar resolver de novo, me avise!", materia, data)
		}},
	}
}
