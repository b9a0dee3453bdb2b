package dsl

var templates = map[string]string{
	string(ArtifactTypes):       typesTemplate,
	string(ArtifactSchemas):     schemasTemplate,
	string(ArtifactServices):    servicesTemplate,
	string(ArtifactControllers): controllersTemplate,
	string(ArtifactRoutes):      routesTemplate,
	string(ArtifactIndex):       indexTemplate,
	"mount":                     mountTemplate,
}

const typesTemplate = `import { {{ .Name }} } from '{{ .Client }}';

export type Create{{ .Name }}DTO = Pick<{{ .Name }}, {{ pickList .Entity }}>;
export type Update{{ .Name }}DTO = Partial<Create{{ .Name }}DTO>;
export type {{ .Name }}DTO = {{ .Name }};
export type Delete{{ .Name }}DTO = Pick<{{ .Name }}, '{{ idName .Entity }}'>;
`

const schemasTemplate = `import Joi from 'joi';
{{- if .EnumsUsed }}
import { {{ join .EnumsUsed ", " }} } from '{{ .Client }}';
{{- end }}
import { Create{{ .Name }}DTO, Update{{ .Name }}DTO } from './{{ .Folder }}.types';

export const create{{ .Name }}Schema = Joi.object<Create{{ .Name }}DTO>({
{{- range .Writable }}
  {{ .Name }}: {{ joiCreate . }},
{{- end }}
});

export const update{{ .Name }}Schema = Joi.object<Update{{ .Name }}DTO>({
{{- range .Writable }}
  {{ .Name }}: {{ joiUpdate . }},
{{- end }}
}).min(1);
`

const servicesTemplate = `import { PrismaClient } from '{{ .Client }}';
import { Create{{ .Name }}DTO, Update{{ .Name }}DTO, {{ .Name }}DTO } from './{{ .Folder }}.types';

const prisma = new PrismaClient();

export const create{{ .Name }} = async (data: Create{{ .Name }}DTO): Promise<{{ .Name }}DTO> => {
  return prisma.{{ .Folder }}.create({ data });
};

export const get{{ .Name }}ById = async (id: {{ .IDType }}): Promise<{{ .Name }}DTO | null> => {
{{- if .SoftDelete }}
  return prisma.{{ .Folder }}.findFirst({ where: { {{ whereID .Entity }}, deletedAt: null } });
{{- else }}
  return prisma.{{ .Folder }}.findUnique({ where: { {{ whereID .Entity }} } });
{{- end }}
};

export const get{{ .Name }}s = async (): Promise<{{ .Name }}DTO[]> => {
{{- if .SoftDelete }}
  return prisma.{{ .Folder }}.findMany({ where: { deletedAt: null } });
{{- else }}
  return prisma.{{ .Folder }}.findMany();
{{- end }}
};

export const update{{ .Name }} = async (id: {{ .IDType }}, data: Update{{ .Name }}DTO): Promise<{{ .Name }}DTO> => {
  return prisma.{{ .Folder }}.update({ where: { {{ whereID .Entity }} }, data });
};

export const delete{{ .Name }} = async (id: {{ .IDType }}): Promise<{{ .Name }}DTO> => {
{{- if .SoftDelete }}
  return prisma.{{ .Folder }}.update({ where: { {{ whereID .Entity }} }, data: { deletedAt: new Date() } });
{{- else }}
  return prisma.{{ .Folder }}.delete({ where: { {{ whereID .Entity }} } });
{{- end }}
};
`

const controllersTemplate = `import { Request, Response } from 'express';
import { ReasonPhrases, StatusCodes } from 'http-status-codes';
import { create{{ .Name }}, get{{ .Name }}ById, get{{ .Name }}s, update{{ .Name }}, delete{{ .Name }} } from './{{ .Folder }}.services';

const handleError = (res: Response, err: any, context: string): void => {
  console.error(` + "`${context}:`" + `, err);
  res.status(StatusCodes.INTERNAL_SERVER_ERROR).json({
    error: ReasonPhrases.INTERNAL_SERVER_ERROR,
  });
};

const create = async (req: Request, res: Response): Promise<void> => {
  /*
    #swagger.summary = 'Create a new {{ lower .Name }}'
    #swagger.description = 'Endpoint to create a new {{ lower .Name }}.'
    #swagger.requestBody = {
      required: true,
      content: {
        'application/json': {
          schema: { $ref: '#/definitions/Create{{ .Name }}DTO' }
        }
      }
    }
    #swagger.responses[201] = {
      description: '{{ .Name }} created successfully.',
      schema: { $ref: '#/definitions/{{ .Name }}DTO' }
    }
    #swagger.responses[400] = { description: 'Bad Request' }
    #swagger.responses[422] = { description: 'Unprocessable Entity' }
    #swagger.responses[500] = { description: 'Internal Server Error' }
  */

  const {{ .Var }}Data = req.body;

  try {
    const new{{ .Name }} = await create{{ .Name }}({{ .Var }}Data);
    res.status(StatusCodes.CREATED).json(new{{ .Name }});
  } catch (err) {
    handleError(res, err, 'Error creating {{ lower .Name }}');
  }
};

const getById = async (req: Request, res: Response): Promise<void> => {
  /*
    #swagger.summary = 'Get {{ lower .Name }} by ID'
    #swagger.description = 'Endpoint to retrieve a {{ lower .Name }} by ID.'
    #swagger.parameters['id'] = {
      in: 'path',
      description: 'ID of the {{ lower .Name }} to retrieve',
      required: true,
      type: '{{ swaggerType .Entity }}'
    }
    #swagger.responses[200] = {
      description: '{{ .Name }} retrieved successfully.',
      schema: { $ref: '#/definitions/{{ .Name }}DTO' }
    }
    #swagger.responses[404] = { description: '{{ .Name }} not found' }
    #swagger.responses[500] = { description: 'Internal Server Error' }
  */

  {{ idParam .Entity }}

  try {
    const {{ .Var }} = await get{{ .Name }}ById(id);
    if (!{{ .Var }}) {
      res.status(StatusCodes.NOT_FOUND).json({ message: '{{ .Name }} not found' });
      return;
    }
    res.status(StatusCodes.OK).json({{ .Var }});
  } catch (err) {
    handleError(res, err, 'Error retrieving {{ lower .Name }}');
  }
};

const getAll = async (req: Request, res: Response): Promise<void> => {
  /*
    #swagger.summary = 'Get all {{ lower .Name }}s'
    #swagger.description = 'Endpoint to retrieve all {{ lower .Name }}s.'
    #swagger.responses[200] = {
      description: '{{ .Name }}s retrieved successfully.',
      schema: { type: 'array', items: { $ref: '#/definitions/{{ .Name }}DTO' } }
    }
    #swagger.responses[500] = { description: 'Internal Server Error' }
  */

  try {
    const {{ .Var }}s = await get{{ .Name }}s();
    res.status(StatusCodes.OK).json({{ .Var }}s);
  } catch (err) {
    handleError(res, err, 'Error retrieving {{ lower .Name }}s');
  }
};

const update = async (req: Request, res: Response): Promise<void> => {
  /*
    #swagger.summary = 'Update a {{ lower .Name }}'
    #swagger.description = 'Endpoint to update an existing {{ lower .Name }}.'
    #swagger.parameters['id'] = {
      in: 'path',
      description: 'ID of the {{ lower .Name }} to update',
      required: true,
      type: '{{ swaggerType .Entity }}'
    }
    #swagger.requestBody = {
      required: true,
      content: {
        'application/json': {
          schema: { $ref: '#/definitions/Update{{ .Name }}DTO' }
        }
      }
    }
    #swagger.responses[200] = {
      description: '{{ .Name }} updated successfully.',
      schema: { $ref: '#/definitions/{{ .Name }}DTO' }
    }
    #swagger.responses[404] = { description: '{{ .Name }} not found' }
    #swagger.responses[500] = { description: 'Internal Server Error' }
  */

  {{ idParam .Entity }}
  const updateData = req.body;

  try {
    const updated{{ .Name }} = await update{{ .Name }}(id, updateData);
    res.status(StatusCodes.OK).json(updated{{ .Name }});
  } catch (err) {
    handleError(res, err, 'Error updating {{ lower .Name }}');
  }
};

const remove = async (req: Request, res: Response): Promise<void> => {
  /*
    #swagger.summary = 'Delete a {{ lower .Name }}'
    #swagger.description = 'Endpoint to delete a {{ lower .Name }}.'
    #swagger.parameters['id'] = {
      in: 'path',
      description: 'ID of the {{ lower .Name }} to delete',
      required: true,
      type: '{{ swaggerType .Entity }}'
    }
    #swagger.responses[200] = {
      description: '{{ .Name }} deleted successfully.',
      schema: { $ref: '#/definitions/{{ .Name }}DTO' }
    }
    #swagger.responses[404] = { description: '{{ .Name }} not found' }
    #swagger.responses[500] = { description: 'Internal Server Error' }
  */

  {{ idParam .Entity }}

  try {
    const deleted{{ .Name }} = await delete{{ .Name }}(id);
    res.status(StatusCodes.OK).json(deleted{{ .Name }});
  } catch (err) {
    handleError(res, err, 'Error deleting {{ lower .Name }}');
  }
};

export default { create, getById, getAll, update, remove };
`

const routesTemplate = `import { Router } from 'express';
import validateRequestBody from '{{ .Validator }}';
import {{ .Var }}Controller from './{{ .Folder }}.controllers';
import * as {{ .Var }}Schemas from './{{ .Folder }}.schemas';

const router = Router();

// read methods ---------------------------------------------------------------
router.get('/', {{ .Var }}Controller.getAll);
router.get('/:id', {{ .Var }}Controller.getById);

// write methods --------------------------------------------------------------
router.post('/', validateRequestBody({{ .Var }}Schemas.create{{ .Name }}Schema), {{ .Var }}Controller.create);
router.put('/:id', validateRequestBody({{ .Var }}Schemas.update{{ .Name }}Schema), {{ .Var }}Controller.update);

// delete methods -------------------------------------------------------------
router.delete('/:id', {{ .Var }}Controller.remove);

export default router;
`

const indexTemplate = `export * from './{{ .Folder }}.types';
export * from './{{ .Folder }}.schemas';
export * from './{{ .Folder }}.services';
export * from './{{ .Folder }}.controllers';
export * from './{{ .Folder }}.routes';
`

const mountTemplate = `import { Router } from 'express';
{{- range .Entities }}
import {{ .Var }}Router from '{{ $.Prefix }}/{{ .Folder }}/{{ .Folder }}.routes';
{{- end }}

const router = Router();
{{ range .Entities }}
router.use('/{{ .Folder }}s', {{ .Var }}Router);
{{- end }}

export default router;
`
